package shell

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/unqdlphn/web-app-starter/internal/logger"
)

func TestExecRunnerDryRun(t *testing.T) {
	var buf bytes.Buffer
	r := NewExecRunner(true, logger.New(io.Discard, true), &buf)

	output, err := r.Run(context.Background(), "", "git", "init")
	if err != nil {
		t.Errorf("Run() in dry-run mode should not error: %v", err)
	}
	if output != "" {
		t.Errorf("Run() in dry-run mode should return empty output, got: %s", output)
	}
	// The plan goes to the output writer, not the logger, so quiet mode
	// cannot swallow it.
	if !strings.Contains(buf.String(), "would run: git init") {
		t.Errorf("dry-run did not print the command line: %q", buf.String())
	}
}

func TestExecRunnerRun(t *testing.T) {
	r := NewExecRunner(false, logger.New(&bytes.Buffer{}, false), nil)

	output, err := r.Run(context.Background(), t.TempDir(), "echo", "test")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(output, "test") {
		t.Errorf("Run() output does not contain 'test': %s", output)
	}
}

func TestExecRunnerRunError(t *testing.T) {
	r := NewExecRunner(false, logger.New(&bytes.Buffer{}, false), nil)

	_, err := r.Run(context.Background(), "", "webstarter-no-such-binary")
	if err == nil {
		t.Fatal("expected error for missing binary, got nil")
	}
	if !strings.Contains(err.Error(), "webstarter-no-such-binary") {
		t.Errorf("error does not name the command: %v", err)
	}
}

func TestExecRunnerLookPathDryRun(t *testing.T) {
	r := NewExecRunner(true, logger.New(&bytes.Buffer{}, false), io.Discard)

	path, err := r.LookPath("webstarter-no-such-binary")
	if err != nil {
		t.Errorf("LookPath() in dry-run mode should not error: %v", err)
	}
	if path != "webstarter-no-such-binary" {
		t.Errorf("LookPath() = %q", path)
	}
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"git", nil, "git"},
		{"git", []string{"init"}, "git init"},
		{"python3", []string{"-m", "venv", ".venv"}, "python3 -m venv .venv"},
	}

	for _, tt := range tests {
		if got := CommandLine(tt.name, tt.args); got != tt.want {
			t.Errorf("CommandLine(%q, %v) = %q, want %q", tt.name, tt.args, got, tt.want)
		}
	}
}

func TestStubRunner(t *testing.T) {
	stub := &StubRunner{
		Outputs: map[string]string{"git status": "clean"},
		FailOn:  "git push",
		Missing: []string{"python3"},
	}

	out, err := stub.Run(context.Background(), "/work", "git", "status")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if out != "clean" {
		t.Errorf("Run() output = %q, want %q", out, "clean")
	}

	if _, err := stub.Run(context.Background(), "/work", "git", "push", "-u", "origin", "main"); err == nil {
		t.Error("expected stubbed failure for git push")
	}

	if _, err := stub.LookPath("python3"); err == nil {
		t.Error("expected LookPath failure for python3")
	}
	if _, err := stub.LookPath("git"); err != nil {
		t.Errorf("LookPath(git) failed: %v", err)
	}

	lines := stub.Lines()
	want := []string{"git status", "git push -u origin main"}
	if len(lines) != len(want) {
		t.Fatalf("recorded %d calls, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if stub.Calls[0].Dir != "/work" {
		t.Errorf("call dir = %q, want %q", stub.Calls[0].Dir, "/work")
	}
}
