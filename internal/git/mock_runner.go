package git

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockRunner is a test double for CLIRunner.
// It answers git invocations from canned output keyed by the joined arguments.
type MockRunner struct {
	mu        sync.Mutex
	responses map[string]string
	failures  map[string]error
	calls     []string
}

// NewMockRunner creates an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		responses: make(map[string]string),
		failures:  make(map[string]error),
	}
}

// On registers the output returned for args.
func (m *MockRunner) On(output string, args ...string) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[strings.Join(args, " ")] = output
	return m
}

// Fail registers an error returned for args.
func (m *MockRunner) Fail(err error, args ...string) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[strings.Join(args, " ")] = err
	return m
}

// Calls returns the invocations seen so far.
func (m *MockRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Run returns the predefined output or error. Unregistered invocations fail
// with ErrCommandFailed, as a real git would for an unknown revision.
func (m *MockRunner) Run(_ context.Context, repoPath string, args ...string) (string, error) {
	key := strings.Join(args, " ")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, key)

	if err, ok := m.failures[key]; ok {
		return "", err
	}
	if out, ok := m.responses[key]; ok {
		return out, nil
	}
	return "", fmt.Errorf("%w: no canned output for %q in %s", ErrCommandFailed, key, repoPath)
}
