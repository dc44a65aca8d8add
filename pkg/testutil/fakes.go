// Package testutil provides in-memory fakes for the host collaborators so
// core packages can be tested without touching a real system.
package testutil

import (
	"context"
	"sync"

	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

// FakeQuerier answers package queries from in-memory sets.
type FakeQuerier struct {
	Installed map[string]bool
	Repos     map[string]bool
	QueryErr  error
}

// NewFakeQuerier creates a querier with the given installed packages.
func NewFakeQuerier(installed ...string) *FakeQuerier {
	q := &FakeQuerier{
		Installed: make(map[string]bool),
		Repos:     make(map[string]bool),
	}
	for _, p := range installed {
		q.Installed[p] = true
	}
	return q
}

func (q *FakeQuerier) IsInstalled(_ context.Context, pkg string) (bool, error) {
	if q.QueryErr != nil {
		return false, q.QueryErr
	}
	return q.Installed[pkg], nil
}

func (q *FakeQuerier) QueryRepo(_ context.Context, pkg string) (bool, error) {
	if q.QueryErr != nil {
		return false, q.QueryErr
	}
	return q.Repos[pkg], nil
}

// FakeMutator records install/remove calls and can be scripted to fail.
type FakeMutator struct {
	mu        sync.Mutex
	Installs  [][]string
	Removes   [][]string
	Refreshes int

	InstallErr error
	RemoveErr  error
	RefreshErr error
}

func (m *FakeMutator) Install(_ context.Context, pkgs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InstallErr != nil {
		return m.InstallErr
	}
	m.Installs = append(m.Installs, pkgs)
	return nil
}

func (m *FakeMutator) Remove(_ context.Context, pkgs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.Removes = append(m.Removes, pkgs)
	return nil
}

func (m *FakeMutator) Refresh(_ context.Context, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RefreshErr != nil {
		return m.RefreshErr
	}
	m.Refreshes++
	return nil
}

// RemoveCount returns the number of recorded removal transactions.
func (m *FakeMutator) RemoveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Removes)
}

// FakeGate answers confirmations from a scripted queue and counts asks.
type FakeGate struct {
	Answers   []bool
	Asks      int
	Questions []string

	// Cancel makes every Ask return a cancellation signal.
	Cancel bool
}

func (g *FakeGate) Ask(message string) (bool, error) {
	g.Asks++
	g.Questions = append(g.Questions, message)
	if g.Cancel {
		return false, errors.New(errors.ErrCancelled, "prompt aborted")
	}
	if len(g.Answers) == 0 {
		return false, nil
	}
	answer := g.Answers[0]
	g.Answers = g.Answers[1:]
	return answer, nil
}

// FakeServices records enabled units.
type FakeServices struct {
	Enabled []string
	Err     error
}

func (s *FakeServices) Enable(_ context.Context, unit string, _ bool) error {
	if s.Err != nil {
		return s.Err
	}
	s.Enabled = append(s.Enabled, unit)
	return nil
}

// FakeEnumerator returns fixed enumeration text.
type FakeEnumerator struct {
	Text string
	Err  error
}

func (e *FakeEnumerator) Enumerate(context.Context) (string, error) {
	return e.Text, e.Err
}

// FakeLineWriter records idempotent line writes in memory.
type FakeLineWriter struct {
	Files map[string][]string
	Err   error
}

func NewFakeLineWriter() *FakeLineWriter {
	return &FakeLineWriter{Files: make(map[string][]string)}
}

func (w *FakeLineWriter) EnsureLinePresent(path, line string) (types.LineOutcome, error) {
	if w.Err != nil {
		return "", w.Err
	}
	for _, existing := range w.Files[path] {
		if existing == line {
			return types.LineAlreadyPresent, nil
		}
	}
	w.Files[path] = append(w.Files[path], line)
	return types.LineAppended, nil
}

func (w *FakeLineWriter) EnsureSection(path, header string, lines []string) (types.LineOutcome, error) {
	if w.Err != nil {
		return "", w.Err
	}
	key := "[" + header + "]"
	for _, existing := range w.Files[path] {
		if existing == key {
			return types.LineAlreadyPresent, nil
		}
	}
	w.Files[path] = append(w.Files[path], key)
	w.Files[path] = append(w.Files[path], lines...)
	return types.LineAppended, nil
}

// NewSession builds a session wired to fresh fakes, returning the fakes for
// assertions.
func NewSession() (*types.Session, *FakeQuerier, *FakeMutator, *FakeGate) {
	querier := NewFakeQuerier()
	mutator := &FakeMutator{}
	gate := &FakeGate{}

	sess := &types.Session{
		Pkgs:     querier,
		Mutator:  mutator,
		Services: &FakeServices{},
		Lines:    NewFakeLineWriter(),
		Gate:     gate,
	}
	return sess, querier, mutator, gate
}
