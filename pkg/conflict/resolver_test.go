package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/testutil"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

const (
	audioGroup = types.Group("audio")
	pipewire   = types.ActionID("install-pipewire")
	pulseaudio = types.ActionID("install-pulseaudio")
)

func newAudioResolver() *Resolver {
	r := NewResolver()
	r.AddMember(audioGroup, pipewire, []string{"pipewire", "pipewire-pulse"})
	r.AddMember(audioGroup, pulseaudio, []string{"pulseaudio", "pulseaudio-alsa"})
	return r
}

func TestCheckFindsActiveAlternative(t *testing.T) {
	sess, querier, _, _ := testutil.NewSession()
	querier.Installed["pulseaudio"] = true

	r := newAudioResolver()
	active, found := r.Check(sess, audioGroup, pipewire)
	require.True(t, found)
	assert.Equal(t, pulseaudio, active)
}

func TestCheckCleanGroup(t *testing.T) {
	sess, _, _, _ := testutil.NewSession()

	r := newAudioResolver()
	_, found := r.Check(sess, audioGroup, pipewire)
	assert.False(t, found)
}

func TestCheckIgnoresTheIncomingMember(t *testing.T) {
	sess, querier, _, _ := testutil.NewSession()
	querier.Installed["pipewire"] = true

	r := newAudioResolver()
	_, found := r.Check(sess, audioGroup, pipewire)
	assert.False(t, found, "the member being installed is not its own conflict")
}

func TestResolveAsksGateExactlyOnceBeforeRemoval(t *testing.T) {
	sess, querier, mutator, gate := testutil.NewSession()
	querier.Installed["pulseaudio"] = true
	gate.Answers = []bool{true}

	r := newAudioResolver()
	err := r.Resolve(sess, audioGroup, pipewire)
	require.NoError(t, err)

	assert.Equal(t, 1, gate.Asks, "the gate must be asked exactly once per conflict")
	require.Equal(t, 1, mutator.RemoveCount())
	assert.Equal(t, []string{"pulseaudio", "pulseaudio-alsa"}, mutator.Removes[0])
}

func TestResolveDeclinedMeansNoRemoval(t *testing.T) {
	sess, querier, mutator, gate := testutil.NewSession()
	querier.Installed["pulseaudio"] = true
	gate.Answers = []bool{false}

	r := newAudioResolver()
	err := r.Resolve(sess, audioGroup, pipewire)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConflictDeclined),
		"declining must yield ConflictDeclined, not a failure")
	assert.Equal(t, 0, mutator.RemoveCount(), "declining must prevent any removal mutation")
	assert.Equal(t, 1, gate.Asks)
}

func TestResolveCleanGroupSkipsGate(t *testing.T) {
	sess, _, mutator, gate := testutil.NewSession()

	r := newAudioResolver()
	err := r.Resolve(sess, audioGroup, pipewire)
	require.NoError(t, err)
	assert.Equal(t, 0, gate.Asks, "no conflict means the gate is never asked")
	assert.Equal(t, 0, mutator.RemoveCount())
}

func TestResolvePropagatesCancellation(t *testing.T) {
	sess, querier, mutator, gate := testutil.NewSession()
	querier.Installed["pulseaudio"] = true
	gate.Cancel = true

	r := newAudioResolver()
	err := r.Resolve(sess, audioGroup, pipewire)
	require.Error(t, err)
	assert.True(t, errors.IsCancellation(err))
	assert.Equal(t, 0, mutator.RemoveCount())
}

func TestResolveSurfacesRemovalFailure(t *testing.T) {
	sess, querier, mutator, gate := testutil.NewSession()
	querier.Installed["pulseaudio"] = true
	gate.Answers = []bool{true}
	mutator.RemoveErr = errors.New(errors.ErrMutation, "pacman exit status 1")

	r := newAudioResolver()
	err := r.Resolve(sess, audioGroup, pipewire)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConflictRemoval))
}

func TestResolveUnknownGroupIsClean(t *testing.T) {
	sess, _, _, gate := testutil.NewSession()

	r := NewResolver()
	err := r.Resolve(sess, types.Group("video"), "whatever")
	require.NoError(t, err)
	assert.Equal(t, 0, gate.Asks)
}
