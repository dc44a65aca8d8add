package recipes

import (
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/config"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/testutil"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

func newSession(t *testing.T) (*types.Session, *testutil.FakeQuerier, *testutil.FakeMutator, *testutil.FakeGate) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	sess, querier, mutator, gate := testutil.NewSession()

	k, err := config.Load()
	require.NoError(t, err)
	sess.Config = k
	sess.GPU = &testutil.FakeEnumerator{}
	sess.Audio = &testutil.FakeEnumerator{}

	return sess, querier, mutator, gate
}

func TestBuildRegistersEverySequenceStep(t *testing.T) {
	sess, _, _, _ := newSession(t)
	actions, _ := Build(sess)

	for _, id := range Sequence(sess) {
		assert.True(t, actions.Has(id), "auto-pilot step %s must be a registered action", id)
	}
}

func TestEnableCachyOSReposIsIdempotent(t *testing.T) {
	sess, _, mutator, _ := newSession(t)
	actions, _ := Build(sess)

	result, err := actions.Invoke(sess, EnableCachyOSRepos)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, 1, mutator.Refreshes, "a newly enabled repo triggers a database refresh")

	result, err = actions.Invoke(sess, EnableCachyOSRepos)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, 1, mutator.Refreshes, "an already-present repo must not refresh again")
}

func TestInstallGPUDriversPicksDetectedVendor(t *testing.T) {
	sess, _, mutator, _ := newSession(t)
	sess.GPU = &testutil.FakeEnumerator{
		Text: "01:00.0 VGA compatible controller: NVIDIA Corporation GA104 [GeForce RTX 3070]",
	}
	actions, _ := Build(sess)

	result, _ := actions.Invoke(sess, InstallGPUDrivers)
	assert.Equal(t, types.StatusSuccess, result.Status)
	require.Len(t, mutator.Installs, 1)
	assert.Contains(t, mutator.Installs[0], "nvidia-dkms")
}

func TestInstallGPUDriversUnknownVendorSkips(t *testing.T) {
	sess, _, mutator, _ := newSession(t)
	sess.GPU = &testutil.FakeEnumerator{Text: "no gpu here"}
	actions, _ := Build(sess)

	result, _ := actions.Invoke(sess, InstallGPUDrivers)
	assert.Equal(t, types.StatusSkipped, result.Status, "unknown vendor must never guess a driver")
	assert.Empty(t, mutator.Installs)
}

func TestInstallPipeWireRemovesPulseAudioWhenConfirmed(t *testing.T) {
	sess, querier, mutator, gate := newSession(t)
	querier.Installed["pulseaudio"] = true
	gate.Answers = []bool{true}
	actions, _ := Build(sess)

	result, err := actions.Invoke(sess, InstallPipeWire)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)

	assert.Equal(t, 1, gate.Asks, "the conflict gate is asked exactly once")
	require.Equal(t, 1, mutator.RemoveCount())
	assert.Contains(t, mutator.Removes[0], "pulseaudio")
	require.Len(t, mutator.Installs, 1)
	assert.Contains(t, mutator.Installs[0], "pipewire")
}

func TestInstallPipeWireDeclinedConflict(t *testing.T) {
	sess, querier, mutator, gate := newSession(t)
	querier.Installed["pulseaudio"] = true
	gate.Answers = []bool{false}
	actions, _ := Build(sess)

	result, err := actions.Invoke(sess, InstallPipeWire)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDeclined, result.Status)
	assert.Equal(t, 0, mutator.RemoveCount())
	assert.Empty(t, mutator.Installs, "declining the conflict must skip the install entirely")
}

func TestInstallPipeWireCleanHostSkipsGate(t *testing.T) {
	sess, _, mutator, gate := newSession(t)
	actions, _ := Build(sess)

	result, err := actions.Invoke(sess, InstallPipeWire)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, 0, gate.Asks)
	require.Len(t, mutator.Installs, 1)
}

func TestKDEOptimizationsWritesTweaksOnce(t *testing.T) {
	sess, _, _, _ := newSession(t)
	lines := testutil.NewFakeLineWriter()
	sess.Lines = lines
	actions, _ := Build(sess)

	result, _ := actions.Invoke(sess, KDEOptimizations)
	assert.Equal(t, types.StatusSuccess, result.Status)

	// Running again must not duplicate any tweak line.
	before := len(lines.Files)
	result, _ = actions.Invoke(sess, KDEOptimizations)
	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, before, len(lines.Files))
	for _, fileLines := range lines.Files {
		seen := map[string]int{}
		for _, l := range fileLines {
			seen[l]++
			assert.Equal(t, 1, seen[l], "line %q duplicated", l)
		}
	}
}

func TestGamingMetaSkipsWithoutMultilib(t *testing.T) {
	sess, querier, mutator, _ := newSession(t)
	actions, _ := Build(sess)

	result, _ := actions.Invoke(sess, InstallGamingMeta)
	assert.Equal(t, types.StatusSkipped, result.Status)
	assert.Empty(t, mutator.Installs)

	// With multilib enabled, the install proceeds.
	querier.Repos["steam"] = true
	result, _ = actions.Invoke(sess, InstallGamingMeta)
	assert.Equal(t, types.StatusSuccess, result.Status)
	require.Len(t, mutator.Installs, 1)
	assert.Contains(t, mutator.Installs[0], "steam")
}

func TestPerformanceTweaksEnablesZram(t *testing.T) {
	sess, _, mutator, _ := newSession(t)
	services := &testutil.FakeServices{}
	sess.Services = services
	actions, _ := Build(sess)

	result, _ := actions.Invoke(sess, PerformanceTweaks)
	assert.Equal(t, types.StatusSuccess, result.Status)
	require.Len(t, mutator.Installs, 1)
	assert.Contains(t, mutator.Installs[0], "zram-generator")
	assert.Contains(t, services.Enabled, "systemd-zram-setup@zram0.service")
}

func TestEnableBluetooth(t *testing.T) {
	sess, _, mutator, _ := newSession(t)
	services := &testutil.FakeServices{}
	sess.Services = services
	actions, _ := Build(sess)

	result, _ := actions.Invoke(sess, EnableBluetooth)
	assert.Equal(t, types.StatusSuccess, result.Status)
	require.Len(t, mutator.Installs, 1)
	assert.Contains(t, mutator.Installs[0], "bluez")
	assert.Contains(t, services.Enabled, "bluetooth.service")
}
