package mylox

import (
	"fmt"
	"strconv"
)

// Language value
// ranging from numbers and strings to the error and function sentinels
type Value interface {
	String() string
	Equals(Value) bool
}

// EmptyValue is the result of statements that produce nothing
type EmptyValue struct{}

func (emptyValue EmptyValue) String() string {
	return ""
}

func (emptyValue EmptyValue) Equals(other Value) bool {
	_, ok := other.(EmptyValue)
	return ok
}

type NilValue struct{}

func (nilValue NilValue) String() string {
	return "nil"
}

func (nilValue NilValue) Equals(other Value) bool {
	_, ok := other.(NilValue)
	return ok
}

type NumberValue struct {
	val float64
}

func (numberValue NumberValue) String() string {
	return nToS(numberValue.val)
}

func (numberValue NumberValue) Equals(other Value) bool {
	if otherNum, ok := other.(NumberValue); ok {
		return numberValue.val == otherNum.val
	}
	return false
}

func nToS(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

type StringValue struct {
	val string
}

func (stringValue StringValue) String() string {
	return stringValue.val
}

func (stringValue StringValue) Equals(other Value) bool {
	if otherStr, ok := other.(StringValue); ok {
		return stringValue.val == otherStr.val
	}
	return false
}

type BoolValue struct {
	val bool
}

func (boolValue BoolValue) String() string {
	if boolValue.val {
		return "true"
	}
	return "false"
}

func (boolValue BoolValue) Equals(other Value) bool {
	if otherBool, ok := other.(BoolValue); ok {
		return boolValue.val == otherBool.val
	}
	return false
}

// ErrorValue travels up the tree in place of a result. Every rule that
// evaluates a child checks for it before doing anything else.
type ErrorValue struct {
	message string
}

func errorf(format string, a ...interface{}) ErrorValue {
	return ErrorValue{message: fmt.Sprintf(format, a...)}
}

func (errorValue ErrorValue) Message() string {
	return errorValue.message
}

func (errorValue ErrorValue) String() string {
	return errorValue.message
}

func (errorValue ErrorValue) Equals(other Value) bool {
	if otherErr, ok := other.(ErrorValue); ok {
		return errorValue.message == otherErr.message
	}
	return false
}

// FunctionValue points at a body in the context's function arena.
type FunctionValue struct {
	index int
	name  string
}

func (functionValue FunctionValue) String() string {
	return "<fn " + functionValue.name + ">"
}

// Any two functions compare equal, whichever body they point at.
func (functionValue FunctionValue) Equals(other Value) bool {
	_, ok := other.(FunctionValue)
	return ok
}

func isError(value Value) bool {
	_, ok := value.(ErrorValue)
	return ok
}

func isTrue(value Value) bool {
	boolValue, ok := value.(BoolValue)
	return ok && boolValue.val
}
