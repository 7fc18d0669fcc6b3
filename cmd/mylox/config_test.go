package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mylox.yml")
	data := "trace: true\nhistory_file: /tmp/hist\nprompt: \"lox> \"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Trace: true, HistoryFile: "/tmp/hist", Prompt: "lox> "}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
	if len(cfg.options()) != 1 {
		t.Error("trace config produced no logger option")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Trace || cfg.Prompt != "> " {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.options() != nil {
		t.Error("default config produced options")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("missing explicit config did not fail")
	}
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("trace: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("invalid YAML did not fail")
	}
}
