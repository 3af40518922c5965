package shell

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call records one command issued to a StubRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line returns the call formatted as a command line.
func (c Call) Line() string {
	return CommandLine(c.Name, c.Args)
}

// StubRunner records commands instead of executing them. Tests use it to
// assert the exact command sequence a scaffold run produces.
type StubRunner struct {
	mu sync.Mutex

	// Calls holds every Run invocation in order.
	Calls []Call

	// Outputs maps a command line to the output Run should return.
	Outputs map[string]string

	// FailOn makes Run fail for any command line with this prefix.
	FailOn string

	// Missing lists names LookPath should report as not installed.
	Missing []string
}

// Run records the call and returns the configured output.
func (s *StubRunner) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := Call{Dir: dir, Name: name, Args: args}
	s.Calls = append(s.Calls, call)

	line := call.Line()
	if s.FailOn != "" && strings.HasPrefix(line, s.FailOn) {
		return "", fmt.Errorf("%s: stubbed failure", line)
	}
	return s.Outputs[line], nil
}

// LookPath resolves every name except those listed in Missing.
func (s *StubRunner) LookPath(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.Missing {
		if m == name {
			return "", fmt.Errorf("%s: executable file not found", name)
		}
	}
	return name, nil
}

// Lines returns the recorded command lines in order.
func (s *StubRunner) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, len(s.Calls))
	for i, c := range s.Calls {
		lines[i] = c.Line()
	}
	return lines
}
