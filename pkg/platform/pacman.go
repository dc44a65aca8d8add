package platform

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
)

// Pacman implements types.PackageQuerier and types.PackageMutator by
// shelling out to pacman. Mutations run under sudo with --noconfirm: the
// confirmation policy lives in this tool's gate, not in pacman's prompts.
type Pacman struct {
	runner *Runner
	logger zerolog.Logger
}

// NewPacman creates the pacman collaborator.
func NewPacman(runner *Runner) *Pacman {
	return &Pacman{
		runner: runner,
		logger: logging.GetLogger("platform.pacman"),
	}
}

// IsInstalled reports whether pkg is installed on the host. pacman -Qi
// exits non-zero for unknown packages, which is an answer, not an error.
func (p *Pacman) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	_, err := p.runner.Output(ctx, "pacman", "-Qi", pkg)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// QueryRepo reports whether pkg is available in any enabled repository.
func (p *Pacman) QueryRepo(ctx context.Context, pkg string) (bool, error) {
	_, err := p.runner.Output(ctx, "pacman", "-Si", pkg)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// Install installs pkgs in one transaction.
func (p *Pacman) Install(ctx context.Context, pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}
	p.logger.Info().Strs("packages", pkgs).Msg("Installing packages")

	args := append([]string{"pacman", "-S", "--noconfirm", "--needed"}, pkgs...)
	if _, err := p.runner.Run(ctx, "sudo", args...); err != nil {
		return errors.Wrapf(err, errors.ErrMutation, "failed to install %v", pkgs)
	}
	return nil
}

// Remove removes pkgs with their unneeded dependencies.
func (p *Pacman) Remove(ctx context.Context, pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}
	p.logger.Info().Strs("packages", pkgs).Msg("Removing packages")

	args := append([]string{"pacman", "-Rns", "--noconfirm"}, pkgs...)
	if _, err := p.runner.Run(ctx, "sudo", args...); err != nil {
		return errors.Wrapf(err, errors.ErrMutation, "failed to remove %v", pkgs)
	}
	return nil
}

// Refresh synchronizes the package databases; with upgrade set it also
// performs a full system upgrade.
func (p *Pacman) Refresh(ctx context.Context, upgrade bool) error {
	args := []string{"pacman", "-Sy"}
	if upgrade {
		args = []string{"pacman", "-Syu", "--noconfirm"}
	}
	if _, err := p.runner.Run(ctx, "sudo", args...); err != nil {
		return errors.Wrap(err, errors.ErrMutation, "failed to refresh package databases")
	}
	return nil
}
