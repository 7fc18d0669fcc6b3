package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/pm100/mylox/pkg/mylox"
)

const promptCont = "... "

// runREPL evaluates one line (or brace-balanced group of lines) at a time
// against a single context, so declarations carry over.
func runREPL(cfg Config, opts []mylox.Option) int {
	fmt.Printf("mylox %s\nCtrl+C cancels input, Ctrl+D exits.\n", mylox.VERSION)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	ctx := mylox.NewContext(append([]mylox.Option{mylox.WithFilename("repl")}, opts...)...)
	for {
		source, ok := readStatement(ln, cfg.Prompt)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(source) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))

		program, err := mylox.GenerateAST(source)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		result, err := ctx.Run(program)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if _, empty := result.(mylox.EmptyValue); !empty {
			fmt.Println(result)
		}
	}
}

// readStatement keeps prompting while braces are left open.
func readStatement(ln *liner.State, prompt string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = promptCont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if openBraces(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// openBraces counts unclosed braces outside string literals and comments
func openBraces(source string) int {
	depth := 0
	inString := false
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(source) && source[i+1] == '/':
			for i < len(source) && source[i] != '\n' {
				i++
			}
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
	}
	return depth
}
