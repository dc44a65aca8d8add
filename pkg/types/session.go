package types

import (
	"context"

	"github.com/knadh/koanf/v2"
)

// PackageQuerier answers read-only questions about the host package state.
// The core consumes this capability; pkg/platform implements it over pacman.
type PackageQuerier interface {
	// IsInstalled reports whether pkg is installed on the host.
	IsInstalled(ctx context.Context, pkg string) (bool, error)

	// QueryRepo reports whether pkg is available in any enabled repository.
	QueryRepo(ctx context.Context, pkg string) (bool, error)
}

// PackageMutator installs and removes packages. Every call mutates the
// shared host package database; callers serialize mutations (the whole
// process is single threaded by design).
type PackageMutator interface {
	Install(ctx context.Context, pkgs []string) error
	Remove(ctx context.Context, pkgs []string) error

	// Refresh synchronizes the package databases (and optionally upgrades).
	Refresh(ctx context.Context, upgrade bool) error
}

// ServiceManager enables system and user services.
type ServiceManager interface {
	Enable(ctx context.Context, unit string, userScope bool) error
}

// Enumerator returns raw host-enumeration text (lspci, pactl info) for the
// capability detector to classify. Implementations never interpret the
// output themselves.
type Enumerator interface {
	Enumerate(ctx context.Context) (string, error)
}

// LineWriter provides append-if-absent semantics against host config files.
type LineWriter interface {
	EnsureLinePresent(path, line string) (LineOutcome, error)
	EnsureSection(path, header string, lines []string) (LineOutcome, error)
}

// LineOutcome is the result of an idempotent line write.
type LineOutcome string

const (
	LineAlreadyPresent LineOutcome = "already_present"
	LineAppended       LineOutcome = "appended"
)

// Gate is the synchronous yes/no confirmation prompt that guards every
// destructive step. It blocks until answered; the only error it returns is
// a cancellation signal from the operator.
type Gate interface {
	Ask(message string) (bool, error)
}

// Options are the run-wide switches threaded through every action.
type Options struct {
	// DryRun logs mutations without performing them.
	DryRun bool

	// NoConfirm auto-approves every confirmation, for headless runs.
	NoConfirm bool
}

// Session carries the per-run state and collaborators through every action
// invocation. It replaces ambient globals: each component receives the
// session explicitly.
//
// Known limitation: nothing guards against a second concurrent process
// mutating the same host package database. That race is outside this tool;
// within one process all mutations are strictly sequential.
type Session struct {
	Ctx context.Context

	Pkgs     PackageQuerier
	Mutator  PackageMutator
	Services ServiceManager
	GPU      Enumerator
	Audio    Enumerator
	Lines    LineWriter
	Gate     Gate

	Config  *koanf.Koanf
	Options Options

	results []MutationResult
}

// Record appends a result to the session log.
func (s *Session) Record(r MutationResult) {
	s.results = append(s.results, r)
}

// Results returns the accumulated invocation log in order.
func (s *Session) Results() []MutationResult {
	return s.results
}

// Context returns the session context, defaulting to context.Background.
func (s *Session) Context() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}
