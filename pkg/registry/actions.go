package registry

import (
	"time"

	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

// Actions is the action registry: the single dispatch surface shared by the
// interactive menu and the auto-pilot sequencer.
type Actions struct {
	reg Registry[types.Action]
}

// NewActions creates an empty action registry.
func NewActions() *Actions {
	return &Actions{reg: New[types.Action]()}
}

// Register adds an action. Duplicate identifiers are rejected; actions are
// immutable once registered.
func (a *Actions) Register(action types.Action) error {
	if action.ID == "" {
		return errors.New(errors.ErrInvalidInput, "action id cannot be empty")
	}
	if action.Run == nil {
		return errors.Newf(errors.ErrInvalidInput, "action '%s' has no operation", action.ID)
	}
	return a.reg.Register(string(action.ID), action)
}

// MustRegisterAction registers an action and panics on failure. Used in
// wiring code where a duplicate is a programming error.
func (a *Actions) MustRegisterAction(action types.Action) {
	MustRegister(a.reg, string(action.ID), action)
}

// Get returns the action registered under id.
func (a *Actions) Get(id types.ActionID) (types.Action, error) {
	return a.reg.Get(string(id))
}

// Has reports whether id is a registered action.
func (a *Actions) Has(id types.ActionID) bool {
	return a.reg.Has(string(id))
}

// IDs returns registered action identifiers in registration order, which is
// also menu order.
func (a *Actions) IDs() []types.ActionID {
	names := a.reg.List()
	ids := make([]types.ActionID, len(names))
	for i, n := range names {
		ids[i] = types.ActionID(n)
	}
	return ids
}

// Invoke runs the action registered under id and converts every failure
// mode into a MutationResult. An operation error, a declined conflict, or
// even a panic inside the operation never escapes the registry boundary:
// one failed step must not abort the whole run.
//
// The returned error is non-nil only when the operator cancelled an
// interactive prompt mid-action; callers use it to end their loop
// gracefully. Every invocation, including a cancelled one, is recorded on
// the session log with a terminal status.
func (a *Actions) Invoke(sess *types.Session, id types.ActionID) (result types.MutationResult, err error) {
	logger := logging.GetLogger("registry")
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().
				Str("action", string(id)).
				Interface("panic", rec).
				Msg("Action panicked")
			result = types.MutationResult{
				Action:   id,
				Status:   types.StatusFailure,
				Err:      errors.Newf(errors.ErrInternal, "action '%s' panicked: %v", id, rec),
				Duration: time.Since(start),
			}
			err = nil
			sess.Record(result)
		}
	}()

	action, getErr := a.Get(id)
	if getErr != nil {
		result = types.MutationResult{
			Action:   id,
			Status:   types.StatusFailure,
			Err:      getErr,
			Duration: time.Since(start),
		}
		sess.Record(result)
		return result, nil
	}

	logger.Debug().
		Str("action", string(id)).
		Str("label", action.Label).
		Bool("dry_run", sess.Options.DryRun).
		Msg("Invoking action")

	runErr := action.Run(sess)
	result = resultFor(id, runErr, time.Since(start))

	switch result.Status {
	case types.StatusSuccess:
		logger.Info().Str("action", string(id)).Dur("duration", result.Duration).Msg("Action completed")
	case types.StatusFailure:
		logger.Error().Err(result.Err).Str("action", string(id)).Msg("Action failed")
	default:
		logger.Warn().Str("action", string(id)).Str("status", string(result.Status)).Str("reason", result.Message).Msg("Action did not run")
	}

	sess.Record(result)

	if errors.IsCancellation(runErr) {
		return result, runErr
	}
	return result, nil
}

// resultFor maps an operation error onto the result taxonomy. Declined
// conflicts, unmet preconditions and cancellations are surfaced distinctly
// from failures.
func resultFor(id types.ActionID, err error, elapsed time.Duration) types.MutationResult {
	switch {
	case err == nil:
		return types.MutationResult{
			Action:   id,
			Status:   types.StatusSuccess,
			Duration: elapsed,
		}
	case errors.IsErrorCode(err, errors.ErrConflictDeclined):
		return types.MutationResult{
			Action:   id,
			Status:   types.StatusDeclined,
			Message:  err.Error(),
			Duration: elapsed,
		}
	case errors.IsErrorCode(err, errors.ErrCancelled):
		return types.MutationResult{
			Action:   id,
			Status:   types.StatusSkipped,
			Message:  "cancelled by operator",
			Duration: elapsed,
		}
	case errors.IsErrorCode(err, errors.ErrNotFound):
		return types.MutationResult{
			Action:   id,
			Status:   types.StatusSkipped,
			Message:  err.Error(),
			Duration: elapsed,
		}
	default:
		return types.MutationResult{
			Action:   id,
			Status:   types.StatusFailure,
			Err:      err,
			Duration: elapsed,
		}
	}
}
