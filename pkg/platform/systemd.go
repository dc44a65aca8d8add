package platform

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
)

// Systemd enables units through systemctl.
type Systemd struct {
	runner *Runner
	logger zerolog.Logger
}

// NewSystemd creates the systemd collaborator.
func NewSystemd(runner *Runner) *Systemd {
	return &Systemd{
		runner: runner,
		logger: logging.GetLogger("platform.systemd"),
	}
}

// Enable enables and starts a unit. User-scoped units (pipewire-pulse and
// friends) run under the operator's session, not root.
func (s *Systemd) Enable(ctx context.Context, unit string, userScope bool) error {
	s.logger.Info().Str("unit", unit).Bool("user", userScope).Msg("Enabling service")

	var err error
	if userScope {
		_, err = s.runner.Run(ctx, "systemctl", "--user", "enable", "--now", unit)
	} else {
		_, err = s.runner.Run(ctx, "sudo", "systemctl", "enable", "--now", unit)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrMutation, "failed to enable service %s", unit)
	}
	return nil
}
