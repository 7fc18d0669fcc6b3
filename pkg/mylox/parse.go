package mylox

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type Program struct {
	Pos lexer.Position

	Statements []*Statement `@@*`
}

// Statement is one of the declaration or statement forms. Exactly one
// field is set. Malformed is the parser's fallback when nothing else
// matches up to the next ";".
type Statement struct {
	Pos lexer.Position

	Fun       *FunDecl        `  @@`
	Var       *VarDecl        `| @@`
	Print     *PrintStatement `| @@`
	If        *IfStatement    `| @@`
	While     *WhileStatement `| @@`
	For       *ForStatement   `| @@`
	Break     *string         `| @"break" ";"`
	Block     *Block          `| @@`
	Expr      *Expr           `| @@ ";"`
	Malformed *Malformed      `| @@`
}

type FunDecl struct {
	Pos lexer.Position

	Name string `"fun" @Ident "(" ")"`
	Body *Block `@@`
}

type VarDecl struct {
	Pos lexer.Position

	Name string `"var" @Ident`
	Init *Expr  `( "=" @@ )? ";"`
}

type PrintStatement struct {
	Pos lexer.Position

	Expr *Expr `"print" @@ ";"`
}

type IfStatement struct {
	Pos lexer.Position

	Condition *Expr      `"if" "(" @@ ")"`
	Then      *Statement `@@`
	Else      *Statement `( "else" @@ )?`
}

type WhileStatement struct {
	Pos lexer.Position

	Condition *Expr      `"while" "(" @@ ")"`
	Body      *Statement `@@`
}

type ForStatement struct {
	Pos lexer.Position

	Init      *ForInit   `"for" "(" ( @@ | ";" )`
	Condition *Expr      `@@? ";"`
	Post      *Expr      `@@? ")"`
	Body      *Statement `@@`
}

type ForInit struct {
	Pos lexer.Position

	Var  *VarDecl `  @@`
	Expr *Expr    `| @@ ";"`
}

type Block struct {
	Pos lexer.Position

	Statements []*Statement `"{" @@* "}"`
}

// Malformed holds the tokens of a statement the grammar could not make
// sense of.
type Malformed struct {
	Pos lexer.Position

	Tokens []string `( @~( ";" | "}" ) )+ ";"`
}

func (malformed Malformed) Text() string {
	return strings.Join(malformed.Tokens, " ")
}

// Expr is an assignment or, when there is no target, a logical or.
type Expr struct {
	Pos lexer.Position

	Target *string  `( @Ident "="`
	Value  *Expr    `  @@ )`
	Or     *LogicOr `| @@`
}

type LogicOr struct {
	Pos lexer.Position

	Left *LogicAnd   `@@`
	Rest []*LogicAnd `( "||" @@ )*`
}

type LogicAnd struct {
	Pos lexer.Position

	Left *Equality   `@@`
	Rest []*Equality `( "&&" @@ )*`
}

type Equality struct {
	Pos lexer.Position

	Left *Comparison   `@@`
	Rest []*EqualityOp `@@*`
}

type EqualityOp struct {
	Op   string      `@( "==" | "!=" )`
	Next *Comparison `@@`
}

type Comparison struct {
	Pos lexer.Position

	Left *Term           `@@`
	Rest []*ComparisonOp `@@*`
}

type ComparisonOp struct {
	Op   string `@( ">=" | ">" | "<=" | "<" )`
	Next *Term  `@@`
}

type Term struct {
	Pos lexer.Position

	Left *Factor   `@@`
	Rest []*TermOp `@@*`
}

type TermOp struct {
	Op   string  `@( "+" | "-" )`
	Next *Factor `@@`
}

type Factor struct {
	Pos lexer.Position

	Left *Unary      `@@`
	Rest []*FactorOp `@@*`
}

type FactorOp struct {
	Op   string `@( "*" | "/" )`
	Next *Unary `@@`
}

type Unary struct {
	Pos lexer.Position

	Op      *string  `( @( "!" | "-" )`
	Unary   *Unary   `  @@ )`
	Primary *Primary `| @@`
}

type Primary struct {
	Pos lexer.Position

	Number *float64 `  @Number`
	Str    *string  `| @String`
	True   *bool    `| @"true"`
	False  *bool    `| @"false"`
	Nil    *bool    `| @"nil"`
	Call   *Call    `| @@`
	Ident  *string  `| @Ident`
	Group  *Expr    `| "(" @@ ")"`
}

// Call arguments are parsed but never evaluated.
type Call struct {
	Pos lexer.Position

	Callee string  `@Ident "("`
	Args   []*Expr `( @@ ( "," @@ )* )? ")"`
}

var (
	lex = lexer.MustSimple([]lexer.Rule{
		{"comment", `//[^\n]*`, nil},
		{"whitespace", `\s+`, nil},

		{"Number", `[0-9]+(\.[0-9]+)?`, nil},
		{"String", `"[^"]*"`, nil},
		{"Keyword", `\b(var|fun|print|if|else|while|for|break|true|false|nil)\b`, nil},
		{"Ident", `[a-zA-Z_]\w*`, nil},
		{"Punct", `==|!=|<=|>=|&&|\|\||[-+*/!=<>(){};,]`, nil},
	})
	parser = participle.MustBuild(&Program{},
		participle.Lexer(lex),
		participle.UseLookahead(4))
)

func GetGrammar() string {
	return parser.String()
}

func GenerateAST(source string) (*Program, error) {
	ast := &Program{}
	err := parser.ParseString("", source, ast)
	if err != nil {
		return nil, err
	}
	return ast, nil
}
