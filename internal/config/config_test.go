package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	body := "ignore_paths:\n  - test/\n  - vendor/\nallowlist:\n  - '^sk-EXAMPLE.*'\nthreads: 4\nfail_on: high\n"
	p := writeTemp(t, dir, "leakgate.yaml", body)
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(cfg.IgnorePaths) != 2 || cfg.IgnorePaths[0] != "test/" {
		t.Fatalf("unexpected ignore_paths: %v", cfg.IgnorePaths)
	}
	if len(cfg.Allowlist) != 1 {
		t.Fatalf("unexpected allowlist: %v", cfg.Allowlist)
	}
	if cfg.Threads == nil || *cfg.Threads != 4 {
		t.Fatalf("expected threads=4, got %#v", cfg.Threads)
	}
	if cfg.FailOn == nil || *cfg.FailOn != "high" {
		t.Fatalf("expected fail_on=high, got %#v", cfg.FailOn)
	}
}

func TestLoadFile_AbsentFieldsStayNil(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "leakgate.yaml", "threads: 2\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.IgnorePaths != nil || cfg.Allowlist != nil || cfg.FailOn != nil {
		t.Fatalf("expected absent fields to stay zero, got %#v", cfg)
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "leakgate.yaml", "threads: 1\n")
	writeTemp(t, dir, ".leakgate.yaml", "threads: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 7 {
		t.Fatalf("expected threads=7 from .leakgate.yaml, got %#v", cfg.Threads)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLocal(dir); err == nil {
		t.Fatal("expected error when no local config exists")
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "leakgate")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yml"), []byte("threads: 9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 9 {
		t.Fatalf("expected threads=9 from global config, got %#v", cfg.Threads)
	}
}
