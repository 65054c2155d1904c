package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"--db", "/tmp/x.db", "--lang", "en"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs() error: %v", err)
	}
	if opts.command != "" || opts.dbPath != "/tmp/x.db" || opts.language != "en" {
		t.Fatalf("parseArgs() = %+v", opts)
	}

	opts, err = parseArgs([]string{"reset-credential", "--email", "ana@example.com"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs(reset-credential) error: %v", err)
	}
	if opts.command != resetCredentialCommand || opts.email != "ana@example.com" {
		t.Fatalf("parseArgs(reset-credential) = %+v", opts)
	}
}

func TestParseArgsRejectsBadInput(t *testing.T) {
	tests := [][]string{
		{"--lang", "ru"},
		{"reset-credential"},
		{"--email", "ana@example.com"},
		{"extra"},
	}
	for _, args := range tests {
		if _, err := parseArgs(args, io.Discard); err == nil {
			t.Fatalf("parseArgs(%v) expected error", args)
		}
	}
}

func setQuietEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("CREDENTIAL_MODE", "")
	t.Setenv("DEFAULT_LANGUAGE", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("TZ", "UTC")
}

func TestRunInteractiveSessionExits(t *testing.T) {
	setQuietEnv(t)
	dbPath := filepath.Join(t.TempDir(), "nested", "nutrismart.db")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--db", dbPath, "--lang", "en"}, strings.NewReader("3\n"), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Welcome to NutriSmart!") || !strings.Contains(stdout.String(), "See you soon!") {
		t.Fatalf("stdout:\n%s", stdout.String())
	}
}

func TestRunResetCredentialInPlainModeFails(t *testing.T) {
	setQuietEnv(t)
	dbPath := filepath.Join(t.TempDir(), "nutrismart.db")

	var stdout bytes.Buffer
	code := run(context.Background(), []string{"reset-credential", "--db", dbPath, "--lang", "en", "--email", "ana@example.com"}, strings.NewReader(""), &stdout, io.Discard)
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "Reset unavailable") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestRunResetCredentialUnknownUserInBcryptMode(t *testing.T) {
	setQuietEnv(t)
	t.Setenv("CREDENTIAL_MODE", "bcrypt")
	dbPath := filepath.Join(t.TempDir(), "nutrismart.db")

	var stdout bytes.Buffer
	code := run(context.Background(), []string{"reset-credential", "--db", dbPath, "--lang", "en", "--email", "ana@example.com"}, strings.NewReader(""), &stdout, io.Discard)
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "Email not found!") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	setQuietEnv(t)
	t.Setenv("CREDENTIAL_MODE", "argon2")

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"--db", filepath.Join(t.TempDir(), "x.db")}, strings.NewReader(""), io.Discard, &stderr)
	if code != 1 || !strings.Contains(stderr.String(), "CREDENTIAL_MODE") {
		t.Fatalf("run() = %d, stderr = %q", code, stderr.String())
	}
}
