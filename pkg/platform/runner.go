// Package platform implements the external host collaborators: command
// execution, the pacman query/mutation surface, systemd, and the raw
// hardware enumerators. The core packages consume these through the
// interfaces in pkg/types and never shell out themselves.
package platform

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
)

// commandTimeout bounds a single external command. Package installation can
// legitimately take minutes on a cold mirror.
const commandTimeout = 15 * time.Minute

// Runner executes host commands with captured output and structured logging.
type Runner struct {
	logger zerolog.Logger
	dryRun bool
}

// NewRunner creates a command runner. With dryRun set, commands are logged
// but never executed.
func NewRunner(dryRun bool) *Runner {
	return &Runner{
		logger: logging.GetLogger("platform.runner"),
		dryRun: dryRun,
	}
}

// RunResult carries the captured output of one command.
type RunResult struct {
	Stdout string
	Stderr string
}

// Run executes name with args and streams captured output to the operator.
// A non-zero exit is returned as an ErrCommandRun error; callers decide
// whether that is fatal.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (RunResult, error) {
	r.logger.Info().
		Str("command", name).
		Strs("args", args).
		Bool("dry_run", r.dryRun).
		Msg("Executing command")

	if r.dryRun {
		fmt.Printf("dry-run: %s %v\n", name, args)
		return RunResult{}, nil
	}

	runCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	// Show the tool's own progress output to the operator, and keep a
	// copy in the debug log.
	if stdout.Len() > 0 {
		fmt.Print(stdout.String())
		r.logger.Debug().Str("output", stdout.String()).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		fmt.Fprint(os.Stderr, stderr.String())
		r.logger.Debug().Str("output", stderr.String()).Msg("Command stderr")
	}

	result := RunResult{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		r.logger.Error().
			Err(err).
			Str("command", name).
			Strs("args", args).
			Msg("Command execution failed")
		return result, errors.Wrapf(err, errors.ErrCommandRun, "command failed: %s", name)
	}

	r.logger.Debug().Str("command", name).Msg("Command executed successfully")
	return result, nil
}

// Output executes name with args and returns stdout without echoing it to
// the console. Used for read-only queries (pacman -Qi, lspci).
func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	logging.LogCommand(name, args)

	runCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), errors.Wrapf(err, errors.ErrCommandRun, "command failed: %s", name)
	}
	return stdout.String(), nil
}

// LookPath reports whether a tool is available on PATH. Used by the setup
// phase: a missing prerequisite aborts the run, unlike action failures.
func LookPath(tool string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return errors.Wrapf(err, errors.ErrSetup, "required tool not found: %s", tool)
	}
	return nil
}
