//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"

	"github.com/pm100/mylox/pkg/mylox"
)

func main() {
	c := make(chan struct{}, 0)
	js.Global().Set("mylox", js.FuncOf(run))
	<-c
}

// run(source) returns the printed output followed by the final value, or
// the error message.
func run(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: run(source) takes a single argument"
	}
	var out strings.Builder
	result, err := mylox.RunProgram("web", args[0].String(), mylox.WithOutput(&out))
	if err != nil {
		return js.ValueOf(out.String() + "error: " + err.Error())
	}
	return js.ValueOf(out.String() + result.String())
}
