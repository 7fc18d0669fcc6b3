package mylox

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrNotDeclared = errors.New("variable not declared")

type StackFrame struct {
	trace   string
	entries map[string]Value
}

// Environment is the stack of active scopes, innermost last. The global
// frame at the bottom is never popped.
type Environment struct {
	frames []*StackFrame
}

func NewEnvironment() *Environment {
	env := &Environment{}
	env.Push("global")
	return env
}

func (env *Environment) Push(trace string) {
	env.frames = append(env.frames, &StackFrame{
		trace:   trace,
		entries: make(map[string]Value),
	})
}

func (env *Environment) Pop() {
	if len(env.frames) <= 1 {
		panic("pop of the global frame")
	}
	env.frames[len(env.frames)-1] = nil
	env.frames = env.frames[:len(env.frames)-1]
}

func (env *Environment) Depth() int {
	return len(env.frames)
}

func (env *Environment) top() *StackFrame {
	return env.frames[len(env.frames)-1]
}

// Declare always binds in the current scope, shadowing outer bindings
func (env *Environment) Declare(key string, value Value) {
	env.top().entries[key] = value
}

// Get a variable's value by looking through every scope (innermost first)
func (env *Environment) Lookup(key string) (Value, bool) {
	for i := len(env.frames) - 1; i >= 0; i-- {
		if value, ok := env.frames[i].entries[key]; ok {
			return value, true
		}
	}
	return nil, false
}

// Assign overwrites the innermost existing binding. Unlike Declare it
// never creates one.
func (env *Environment) Assign(key string, value Value) error {
	for i := len(env.frames) - 1; i >= 0; i-- {
		if _, ok := env.frames[i].entries[key]; ok {
			env.frames[i].entries[key] = value
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrNotDeclared, key)
}

func (env *Environment) String() string {
	var b strings.Builder
	for i := len(env.frames) - 1; i >= 0; i-- {
		frame := env.frames[i]
		keys := make([]string, 0, len(frame.entries))
		for key := range frame.entries {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		b.WriteString(frame.trace + " {\n")
		for _, key := range keys {
			fmt.Fprintf(&b, "\t %v: %v\n", key, frame.entries[key])
		}
		b.WriteString("}\n")
	}
	return b.String()
}
