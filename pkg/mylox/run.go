package mylox

import (
	"fmt"
	"os"
)

const VERSION = "0.1.0"

// MalformedError reports the first statement the parser had to skip
type MalformedError struct {
	Text string
}

func (e *MalformedError) Error() string {
	return "malformed statement: " + e.Text
}

// RuntimeError carries the message of the ErrorValue a program ended with
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func ReadProgram(filename string) (string, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("while trying to read %v: %w", filename, err)
	}
	return string(b), nil
}

func RunProgram(filename string, source string, opts ...Option) (Value, error) {
	program, err := GenerateAST(source)
	if err != nil {
		return nil, fmt.Errorf("%v:%w", filename, err)
	}

	context := NewContext(append([]Option{WithFilename(filename)}, opts...)...)
	return context.Run(program)
}

// Run scans program and, when nothing is malformed, evaluates it. An
// ErrorValue result is returned alongside a *RuntimeError.
func (ctx *Context) Run(program *Program) (Value, error) {
	if text, found := Scan(program); found {
		return nil, fmt.Errorf("%v: %w", ctx.filename, &MalformedError{Text: text})
	}

	result := ctx.Evaluate(program)
	if errorValue, ok := result.(ErrorValue); ok {
		return result, fmt.Errorf("%v: %w", ctx.filename, &RuntimeError{Message: errorValue.Message()})
	}
	return result, nil
}
