package mylox

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/participle/v2/lexer"
)

// Context carries everything a run mutates: the scopes, the declared
// function bodies and the loop/break state. Every Eval method takes it.
type Context struct {
	filename string
	env      *Environment

	// function bodies, indexed by FunctionValue.index
	functions []*Block

	breaking  bool
	loopDepth int

	out    io.Writer
	logger *slog.Logger
}

type Option func(*Context)

func WithOutput(w io.Writer) Option {
	return func(ctx *Context) {
		ctx.out = w
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(ctx *Context) {
		ctx.logger = logger
	}
}

func WithFilename(filename string) Option {
	return func(ctx *Context) {
		ctx.filename = filename
	}
}

func NewContext(opts ...Option) *Context {
	ctx := &Context{
		filename: "main",
		env:      NewEnvironment(),
		out:      os.Stdout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

func (ctx *Context) Environment() *Environment {
	return ctx.env
}

// Evaluate runs program against the context's global scope. The context can
// be reused, the REPL does so line by line.
func (ctx *Context) Evaluate(program *Program) Value {
	ctx.breaking = false
	ctx.loopDepth = 0
	return program.Eval(ctx)
}

func (ctx *Context) push(trace string) {
	ctx.env.Push(trace)
	ctx.logger.Debug("push frame", "trace", trace, "depth", ctx.env.Depth())
}

func (ctx *Context) pop() {
	ctx.logger.Debug("pop frame", "trace", ctx.env.top().trace, "depth", ctx.env.Depth())
	ctx.env.Pop()
}

func (ctx *Context) trace(kind string, pos lexer.Position) string {
	return ctx.filename + ":" + pos.String() + ": " + kind
}

func variableNotFound(name string) ErrorValue {
	return errorf("Variable %v not found", name)
}

func (program Program) Eval(ctx *Context) Value {
	return evalStatements(ctx, program.Statements)
}

// evalStatements runs statements in order and stops at the first error or
// once a break is pending.
func evalStatements(ctx *Context, statements []*Statement) Value {
	var result Value
	result = EmptyValue{}
	for _, statement := range statements {
		result = statement.Eval(ctx)
		if isError(result) || ctx.breaking {
			return result
		}
	}
	return result
}

func (statement Statement) Eval(ctx *Context) Value {
	if statement.Fun != nil {
		return statement.Fun.Eval(ctx)
	}
	if statement.Var != nil {
		return statement.Var.Eval(ctx)
	}
	if statement.Print != nil {
		return statement.Print.Eval(ctx)
	}
	if statement.If != nil {
		return statement.If.Eval(ctx)
	}
	if statement.While != nil {
		return statement.While.Eval(ctx)
	}
	if statement.For != nil {
		return statement.For.Eval(ctx)
	}
	if statement.Break != nil {
		return evalBreak(ctx)
	}
	if statement.Block != nil {
		return statement.Block.Eval(ctx)
	}
	if statement.Expr != nil {
		return statement.Expr.Eval(ctx)
	}
	if statement.Malformed != nil {
		// Scan keeps these away from a normal run
		return errorf("malformed statement: %v", statement.Malformed.Text())
	}
	panic("unreachable")
}

func (block Block) Eval(ctx *Context) Value {
	ctx.push(ctx.trace("block", block.Pos))
	defer ctx.pop()
	return evalStatements(ctx, block.Statements)
}

func (varDecl VarDecl) Eval(ctx *Context) Value {
	var value Value
	value = NilValue{}
	if varDecl.Init != nil {
		value = varDecl.Init.Eval(ctx)
		if isError(value) {
			return value
		}
	}
	ctx.env.Declare(varDecl.Name, value)
	return EmptyValue{}
}

func (printStatement PrintStatement) Eval(ctx *Context) Value {
	value := printStatement.Expr.Eval(ctx)
	if isError(value) {
		return value
	}
	fmt.Fprintln(ctx.out, value.String())
	return value
}

func (ifStatement IfStatement) Eval(ctx *Context) Value {
	condition := ifStatement.Condition.Eval(ctx)
	if isError(condition) {
		return condition
	}
	boolValue, ok := condition.(BoolValue)
	if !ok {
		return errorf("condition must be true or false")
	}
	if boolValue.val {
		return ifStatement.Then.Eval(ctx)
	}
	if ifStatement.Else != nil {
		return ifStatement.Else.Eval(ctx)
	}
	return EmptyValue{}
}

func (whileStatement WhileStatement) Eval(ctx *Context) Value {
	return evalLoop(ctx, whileStatement.Condition, whileStatement.Body, nil)
}

func (forStatement ForStatement) Eval(ctx *Context) Value {
	// the initializer's variable is scoped to the loop
	ctx.push(ctx.trace("for loop", forStatement.Pos))
	defer ctx.pop()
	if forStatement.Init != nil {
		if value := forStatement.Init.Eval(ctx); isError(value) {
			return value
		}
	}
	return evalLoop(ctx, forStatement.Condition, forStatement.Body, forStatement.Post)
}

func (forInit ForInit) Eval(ctx *Context) Value {
	if forInit.Var != nil {
		return forInit.Var.Eval(ctx)
	}
	return forInit.Expr.Eval(ctx)
}

// evalLoop drives while and for. A missing condition is always true and
// post runs only after a body that neither failed nor broke out.
func evalLoop(ctx *Context, conditionExpr *Expr, body *Statement, post *Expr) Value {
	ctx.loopDepth++
	defer func() {
		ctx.loopDepth--
	}()

	var result Value
	result = EmptyValue{}
	for {
		if conditionExpr != nil {
			condition := conditionExpr.Eval(ctx)
			if isError(condition) {
				return condition
			}
			boolValue, ok := condition.(BoolValue)
			if !ok {
				return errorf("condition must be true or false")
			}
			if ctx.breaking {
				ctx.breaking = false
				return result
			}
			if !boolValue.val {
				return result
			}
		}

		result = body.Eval(ctx)
		if isError(result) {
			ctx.breaking = false
			return result
		}
		if ctx.breaking {
			ctx.breaking = false
			ctx.logger.Debug("loop exited by break", "depth", ctx.loopDepth)
			return result
		}

		if post != nil {
			if value := post.Eval(ctx); isError(value) {
				return value
			}
		}
	}
}

func evalBreak(ctx *Context) Value {
	if ctx.loopDepth == 0 {
		return errorf("break outside of loop")
	}
	ctx.breaking = true
	return EmptyValue{}
}

// A declared function's body also runs once, right away.
func (funDecl FunDecl) Eval(ctx *Context) Value {
	index := len(ctx.functions)
	ctx.functions = append(ctx.functions, funDecl.Body)
	ctx.env.Declare(funDecl.Name, FunctionValue{index: index, name: funDecl.Name})
	ctx.logger.Debug("function declared", "name", funDecl.Name, "index", index)

	result := ctx.call(funDecl.Name, index)
	if isError(result) {
		return result
	}
	return EmptyValue{}
}

func (call Call) Eval(ctx *Context) Value {
	value, _ := ctx.env.Lookup(call.Callee)
	function, ok := value.(FunctionValue)
	if !ok {
		return errorf("Function %v not found", call.Callee)
	}
	return ctx.call(call.Callee, function.index)
}

// call runs a stored body in a fresh frame. No arguments are bound.
func (ctx *Context) call(name string, index int) Value {
	body := ctx.functions[index]
	ctx.logger.Debug("function call", "name", name, "index", index)
	ctx.push(ctx.trace("function "+name, body.Pos))
	defer ctx.pop()
	return evalStatements(ctx, body.Statements)
}

func (expr Expr) Eval(ctx *Context) Value {
	if expr.Target == nil {
		return expr.Or.Eval(ctx)
	}
	value := expr.Value.Eval(ctx)
	if isError(value) {
		return value
	}
	if err := ctx.env.Assign(*expr.Target, value); err != nil {
		return variableNotFound(*expr.Target)
	}
	return value
}

func (logicOr LogicOr) Eval(ctx *Context) Value {
	left := logicOr.Left.Eval(ctx)
	for _, next := range logicOr.Rest {
		if isError(left) {
			return left
		}
		if isTrue(left) {
			return BoolValue{val: true}
		}
		left = next.Eval(ctx)
	}
	return left
}

func (logicAnd LogicAnd) Eval(ctx *Context) Value {
	left := logicAnd.Left.Eval(ctx)
	for _, next := range logicAnd.Rest {
		if isError(left) {
			return left
		}
		if left.Equals(BoolValue{val: false}) {
			return BoolValue{val: false}
		}
		left = next.Eval(ctx)
	}
	return left
}

func (equality Equality) Eval(ctx *Context) Value {
	left := equality.Left.Eval(ctx)
	for _, op := range equality.Rest {
		if isError(left) {
			return left
		}
		right := op.Next.Eval(ctx)
		if isError(right) {
			return right
		}
		result := left.Equals(right)
		if op.Op == "!=" {
			result = !result
		}
		left = BoolValue{val: result}
	}
	return left
}

func (comparison Comparison) Eval(ctx *Context) Value {
	left := comparison.Left.Eval(ctx)
	for _, op := range comparison.Rest {
		if isError(left) {
			return left
		}
		right := op.Next.Eval(ctx)
		if isError(right) {
			return right
		}
		left = evalBinary(op.Op, left, right)
	}
	return left
}

func (term Term) Eval(ctx *Context) Value {
	left := term.Left.Eval(ctx)
	for _, op := range term.Rest {
		if isError(left) {
			return left
		}
		right := op.Next.Eval(ctx)
		if isError(right) {
			return right
		}
		left = evalBinary(op.Op, left, right)
	}
	return left
}

func (factor Factor) Eval(ctx *Context) Value {
	left := factor.Left.Eval(ctx)
	for _, op := range factor.Rest {
		if isError(left) {
			return left
		}
		right := op.Next.Eval(ctx)
		if isError(right) {
			return right
		}
		left = evalBinary(op.Op, left, right)
	}
	return left
}

// evalBinary applies an arithmetic or ordering operator to two numbers
func evalBinary(op string, left Value, right Value) Value {
	leftNum, okLeft := left.(NumberValue)
	rightNum, okRight := right.(NumberValue)
	if !okLeft || !okRight {
		return errorf("must both be numbers")
	}
	switch op {
	case "+":
		return NumberValue{val: leftNum.val + rightNum.val}
	case "-":
		return NumberValue{val: leftNum.val - rightNum.val}
	case "*":
		return NumberValue{val: leftNum.val * rightNum.val}
	case "/":
		return NumberValue{val: leftNum.val / rightNum.val}
	case ">":
		return BoolValue{val: leftNum.val > rightNum.val}
	case ">=":
		return BoolValue{val: leftNum.val >= rightNum.val}
	case "<":
		return BoolValue{val: leftNum.val < rightNum.val}
	case "<=":
		return BoolValue{val: leftNum.val <= rightNum.val}
	}
	panic("unreachable")
}

func (unary Unary) Eval(ctx *Context) Value {
	if unary.Op == nil {
		return unary.Primary.Eval(ctx)
	}
	value := unary.Unary.Eval(ctx)
	if isError(value) {
		return value
	}
	if *unary.Op == "!" {
		return BoolValue{val: !isTrue(value)}
	}
	if *unary.Op == "-" {
		if numberValue, ok := value.(NumberValue); ok {
			return NumberValue{val: -numberValue.val}
		}
		return errorf("must be a number")
	}
	panic("unreachable")
}

func (primary Primary) Eval(ctx *Context) Value {
	if primary.Number != nil {
		return NumberValue{val: *primary.Number}
	}
	if primary.Str != nil {
		// the lexer keeps the quote marks
		return StringValue{val: (*primary.Str)[1 : len(*primary.Str)-1]}
	}
	if primary.True != nil {
		return BoolValue{val: true}
	}
	if primary.False != nil {
		return BoolValue{val: false}
	}
	if primary.Nil != nil {
		return NilValue{}
	}
	if primary.Call != nil {
		return primary.Call.Eval(ctx)
	}
	if ident := primary.Ident; ident != nil {
		value, ok := ctx.env.Lookup(*ident)
		if !ok {
			return variableNotFound(*ident)
		}
		return value
	}
	if primary.Group != nil {
		return primary.Group.Eval(ctx)
	}
	panic("unreachable")
}
