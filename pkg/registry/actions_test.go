package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

func TestActionsRegisterValidation(t *testing.T) {
	actions := NewActions()

	err := actions.Register(types.Action{Label: "no id", Run: func(*types.Session) error { return nil }})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "empty id must be rejected")

	err = actions.Register(types.Action{ID: "no-op"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "nil operation must be rejected")

	err = actions.Register(types.Action{ID: "ok", Label: "OK", Run: func(*types.Session) error { return nil }})
	require.NoError(t, err)

	err = actions.Register(types.Action{ID: "ok", Label: "Again", Run: func(*types.Session) error { return nil }})
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestInvokeSuccess(t *testing.T) {
	actions := NewActions()
	sess := &types.Session{}

	ran := false
	actions.MustRegisterAction(types.Action{
		ID:    "install-thing",
		Label: "Install thing",
		Run:   func(*types.Session) error { ran = true; return nil },
	})

	result, err := actions.Invoke(sess, "install-thing")
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Len(t, sess.Results(), 1, "invocation must be recorded on the session log")
}

func TestInvokeDowngradesOperationFailure(t *testing.T) {
	actions := NewActions()
	sess := &types.Session{}

	actions.MustRegisterAction(types.Action{
		ID:    "broken",
		Label: "Broken",
		Run: func(*types.Session) error {
			return errors.New(errors.ErrMutation, "pacman reported exit status 1")
		},
	})

	result, err := actions.Invoke(sess, "broken")
	require.NoError(t, err, "operation failure must not propagate")
	assert.Equal(t, types.StatusFailure, result.Status)
	assert.Error(t, result.Err)
}

func TestInvokeRecoversPanic(t *testing.T) {
	actions := NewActions()
	sess := &types.Session{}

	actions.MustRegisterAction(types.Action{
		ID:    "panicky",
		Label: "Panics",
		Run:   func(*types.Session) error { panic("boom") },
	})

	result, err := actions.Invoke(sess, "panicky")
	require.NoError(t, err, "a panicking operation must not crash the process")
	assert.Equal(t, types.StatusFailure, result.Status)
	require.Error(t, result.Err)
	assert.True(t, errors.IsErrorCode(result.Err, errors.ErrInternal))
	assert.Len(t, sess.Results(), 1)
}

func TestInvokeUnknownAction(t *testing.T) {
	actions := NewActions()
	sess := &types.Session{}

	result, err := actions.Invoke(sess, "never-registered")
	require.NoError(t, err)
	assert.Equal(t, types.StatusFailure, result.Status)
	assert.True(t, errors.IsErrorCode(result.Err, errors.ErrNotFound))
}

func TestInvokeDistinguishesDeclinedConflict(t *testing.T) {
	actions := NewActions()
	sess := &types.Session{}

	actions.MustRegisterAction(types.Action{
		ID:    "pipewire",
		Label: "Install PipeWire",
		Run: func(*types.Session) error {
			return errors.Newf(errors.ErrConflictDeclined, "kept pulseaudio")
		},
	})

	result, err := actions.Invoke(sess, "pipewire")
	require.NoError(t, err)
	assert.Equal(t, types.StatusDeclined, result.Status)
	assert.False(t, result.Failed(), "a declined conflict is not a failure")
	assert.Nil(t, result.Err)
}

func TestInvokePropagatesCancellationOnly(t *testing.T) {
	actions := NewActions()
	sess := &types.Session{}

	actions.MustRegisterAction(types.Action{
		ID:    "aborted",
		Label: "Aborted",
		Run: func(*types.Session) error {
			return errors.New(errors.ErrCancelled, "prompt aborted")
		},
	})

	result, err := actions.Invoke(sess, "aborted")
	require.Error(t, err)
	assert.True(t, errors.IsCancellation(err))
	assert.Equal(t, types.StatusSkipped, result.Status)
	assert.Len(t, sess.Results(), 1, "cancelled invocations still get a terminal status")
}

func TestIDsFollowRegistrationOrder(t *testing.T) {
	actions := NewActions()
	for _, id := range []types.ActionID{"update", "gpu", "audio"} {
		actions.MustRegisterAction(types.Action{
			ID:    id,
			Label: string(id),
			Run:   func(*types.Session) error { return nil },
		})
	}

	assert.Equal(t, []types.ActionID{"update", "gpu", "audio"}, actions.IDs())
}
