package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
)

func TestSummarize(t *testing.T) {
	results := []MutationResult{
		{Action: "a", Status: StatusSuccess},
		{Action: "b", Status: StatusSuccess},
		{Action: "c", Status: StatusFailure},
		{Action: "d", Status: StatusDeclined},
		{Action: "e", Status: StatusSkipped},
	}

	s := Summarize(results)
	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Declined)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 5, s.Total())
}

func TestMutationResultString(t *testing.T) {
	r := MutationResult{Action: "system-update", Status: StatusSuccess}
	assert.Equal(t, "system-update: success", r.String())

	r = MutationResult{
		Action:  "install-pipewire",
		Status:  StatusDeclined,
		Message: "kept pulseaudio",
	}
	assert.Equal(t, "install-pipewire: declined (kept pulseaudio)", r.String())

	r = MutationResult{
		Action: "broken",
		Status: StatusFailure,
		Err:    errors.New(errors.ErrMutation, "exit status 1"),
	}
	assert.Contains(t, r.String(), "failure")
	assert.Contains(t, r.String(), "exit status 1")
}

func TestSessionRecordsInOrder(t *testing.T) {
	sess := &Session{}
	assert.Empty(t, sess.Results())

	sess.Record(MutationResult{Action: "first", Status: StatusSuccess})
	sess.Record(MutationResult{Action: "second", Status: StatusFailure})

	results := sess.Results()
	assert.Len(t, results, 2)
	assert.Equal(t, ActionID("first"), results[0].Action)
	assert.Equal(t, ActionID("second"), results[1].Action)
}

func TestSessionContextDefaults(t *testing.T) {
	sess := &Session{}
	assert.NotNil(t, sess.Context())
}
