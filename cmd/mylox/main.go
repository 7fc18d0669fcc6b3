package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pm100/mylox/pkg/mylox"
)

// exit codes follow sysexits.h, as other Lox implementations do
const (
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
	exitIOErr    = 74
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default ~/"+defaultConfigName+" when present)")
	trace := flag.Bool("trace", false, "log frame and call tracing to stderr")
	version := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *version {
		fmt.Println("mylox", mylox.VERSION)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		println("while loading config:", err.Error())
		os.Exit(exitUsage)
	}
	if *trace {
		cfg.Trace = true
	}
	opts := cfg.options()

	filename := flag.Arg(0)
	if filename == "" {
		os.Exit(runREPL(cfg, opts))
	}

	source, err := mylox.ReadProgram(filename)
	if err != nil {
		println(err.Error())
		os.Exit(exitIOErr)
	}
	result, err := mylox.RunProgram(filename, source, opts...)
	if err != nil {
		println("uh oh.. while running: "+filename, err.Error(), "\n")
		os.Exit(exitCode(err))
	}

	fmt.Println(result)
}

func exitCode(err error) int {
	var runtimeErr *mylox.RuntimeError
	if errors.As(err, &runtimeErr) {
		return exitSoftware
	}
	return exitDataErr
}

func (cfg Config) options() []mylox.Option {
	if !cfg.Trace {
		return nil
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return []mylox.Option{mylox.WithLogger(logger)}
}
