package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setConfigHome points XDG at dir for the duration of the test. The xdg
// package resolves its paths at init, so it needs an explicit reload.
func setConfigHome(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

func TestLoadDefaults(t *testing.T) {
	setConfigHome(t, t.TempDir())

	k, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/pacman.conf", k.String("paths.pacman_conf"))

	pipewire := k.Strings("packages.pipewire")
	assert.Contains(t, pipewire, "pipewire")
	assert.Contains(t, pipewire, "wireplumber")

	sequence := k.Strings("autopilot.sequence")
	require.NotEmpty(t, sequence)
	assert.Equal(t, "enable-cachyos-repos", sequence[0], "repos must be enabled before anything installs")

	kwin := k.Strings("tweaks.kwin")
	assert.Contains(t, kwin, "LatencyPolicy=Low")
}

func TestUserConfigOverridesDefaults(t *testing.T) {
	tmp := t.TempDir()
	setConfigHome(t, tmp)

	writeFile(t, filepath.Join(tmp, "cachykde", "cachykde.toml"), `
[paths]
pacman_conf = "/tmp/test-pacman.conf"
`)

	k, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test-pacman.conf", k.String("paths.pacman_conf"))
	// Untouched keys keep their defaults.
	assert.NotEmpty(t, k.Strings("packages.nvidia"))
}

func TestYamlUserConfig(t *testing.T) {
	tmp := t.TempDir()
	setConfigHome(t, tmp)

	writeFile(t, filepath.Join(tmp, "cachykde", "cachykde.yaml"),
		"paths:\n  sysctl_conf: /tmp/sysctl.conf\n")

	k, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sysctl.conf", k.String("paths.sysctl_conf"))
}

func TestDump(t *testing.T) {
	setConfigHome(t, t.TempDir())

	k, err := Load()
	require.NoError(t, err)

	out, err := Dump(k)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "pacman_conf"))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/home/tester/.config/kwinrc", ExpandHome("~/.config/kwinrc"))
	assert.Equal(t, "/etc/pacman.conf", ExpandHome("/etc/pacman.conf"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
