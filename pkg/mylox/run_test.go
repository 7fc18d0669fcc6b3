package mylox

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRunProgram(t *testing.T) {
	var out bytes.Buffer
	result, err := RunProgram("ok.lox", "var a = 2+3; print a;", WithOutput(&out))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Equals(NumberValue{val: 5}) {
		t.Errorf("result = %v, want 5", result)
	}
	if out.String() != "5\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunProgramRuntimeError(t *testing.T) {
	result, err := RunProgram("bad.lox", "print z;", WithOutput(&bytes.Buffer{}))
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("err = %v, want *RuntimeError", err)
	}
	if runtimeErr.Message != "Variable z not found" {
		t.Errorf("message = %q", runtimeErr.Message)
	}
	if err.Error() != "bad.lox: Variable z not found" {
		t.Errorf("err = %q", err.Error())
	}
	if !isError(result) {
		t.Errorf("result = %v, want the error value", result)
	}
}

func TestRunProgramSkipsMalformed(t *testing.T) {
	var out bytes.Buffer
	_, err := RunProgram("bad.lox", "print 1; print ;", WithOutput(&out))
	var malformedErr *MalformedError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("err = %v, want *MalformedError", err)
	}
	if malformedErr.Text != "print" {
		t.Errorf("text = %q", malformedErr.Text)
	}
	if out.Len() != 0 {
		t.Errorf("evaluation ran, output = %q", out.String())
	}
}

func TestRunProgramParseError(t *testing.T) {
	_, err := RunProgram("bad.lox", "print (1", WithOutput(&bytes.Buffer{}))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var runtimeErr *RuntimeError
	var malformedErr *MalformedError
	if errors.As(err, &runtimeErr) || errors.As(err, &malformedErr) {
		t.Errorf("parse error reported as %T", err)
	}
}

func TestReadProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.lox")
	if err := os.WriteFile(path, []byte("print 1;"), 0o644); err != nil {
		t.Fatal(err)
	}
	source, err := ReadProgram(path)
	if err != nil {
		t.Fatal(err)
	}
	if source != "print 1;" {
		t.Errorf("source = %q", source)
	}
	if _, err := ReadProgram(filepath.Join(t.TempDir(), "missing.lox")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}
