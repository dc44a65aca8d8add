// Package config loads the recipe content: package lists, repository
// definitions, tweak lines and the auto-pilot order. The menu logic never
// hardcodes any of this; it is all data layered from embedded defaults and
// an optional user file.
package config

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
)

//go:embed cachykde.toml
var defaultConfig []byte

// Load layers the embedded defaults with the user's override file, if one
// exists under the XDG config home (cachykde.toml or cachykde.yaml).
func Load() (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	configDir := filepath.Join(xdg.ConfigHome, "cachykde")
	candidates := []struct {
		name   string
		parser koanf.Parser
	}{
		{"cachykde.toml", toml.Parser()},
		{"cachykde.yaml", yaml.Parser()},
	}

	for _, c := range candidates {
		path := filepath.Join(configDir, c.name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), c.parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load user config from %s", path)
		}
		break
	}

	return k, nil
}

// Dump renders the effective configuration tree as TOML for `cachykde
// config`.
func Dump(k *koanf.Koanf) (string, error) {
	out, err := gotoml.Marshal(k.Raw())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigParse, "failed to marshal configuration")
	}
	return string(out), nil
}

// ExpandHome resolves a leading ~ against the current user's home
// directory. Config paths like the kwinrc location use it.
func ExpandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
