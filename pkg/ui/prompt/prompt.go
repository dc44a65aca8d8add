// Package prompt implements the interactive collaborators: the yes/no
// confirmation gate and the single-selection menu. Both block the single
// control thread until answered.
package prompt

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
)

// ConsoleGate implements types.Gate over an interactive terminal.
//
// Headless policy: the underlying tool had no non-interactive story, so one
// is defined here. With noConfirm set every question is auto-approved; on a
// non-TTY stdin without noConfirm the gate answers with a cancellation
// signal instead of guessing, since every gated step is destructive.
type ConsoleGate struct {
	noConfirm bool
	logger    zerolog.Logger
}

// NewConsoleGate creates the gate.
func NewConsoleGate(noConfirm bool) *ConsoleGate {
	return &ConsoleGate{
		noConfirm: noConfirm,
		logger:    logging.GetLogger("prompt.gate"),
	}
}

// Ask blocks until the operator answers. There is no timeout: an in-flight
// question waits as long as the human does.
func (g *ConsoleGate) Ask(message string) (bool, error) {
	if g.noConfirm {
		g.logger.Info().Str("question", message).Msg("Auto-approved (--noconfirm)")
		return true, nil
	}

	if !interactive() {
		g.logger.Warn().Str("question", message).Msg("No TTY for confirmation, treating as cancelled")
		return false, errors.New(errors.ErrCancelled,
			"confirmation required but stdin is not a terminal (use --noconfirm for unattended runs)")
	}

	answer, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(message)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCancelled, "confirmation aborted")
	}

	g.logger.Debug().Str("question", message).Bool("answer", answer).Msg("Confirmation answered")
	return answer, nil
}

// MenuEntry is one selectable menu item.
type MenuEntry struct {
	ID    string
	Label string
}

// Menu renders a list of entries and returns the selected identifier.
type Menu interface {
	Select(title string, entries []MenuEntry) (string, error)
}

// ConsoleMenu implements Menu with pterm's interactive select.
type ConsoleMenu struct {
	logger zerolog.Logger
}

// NewConsoleMenu creates the menu collaborator.
func NewConsoleMenu() *ConsoleMenu {
	return &ConsoleMenu{logger: logging.GetLogger("prompt.menu")}
}

// Select blocks until the operator picks an entry. A missing TTY or an
// aborted prompt is returned as a cancellation signal, which the dispatcher
// treats as a graceful exit.
func (m *ConsoleMenu) Select(title string, entries []MenuEntry) (string, error) {
	if !interactive() {
		return "", errors.New(errors.ErrCancelled, "menu requires a terminal")
	}

	labels := make([]string, len(entries))
	byLabel := make(map[string]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
		byLabel[e.Label] = e.ID
	}

	picked, err := pterm.DefaultInteractiveSelect.
		WithOptions(labels).
		WithDefaultText(title).
		WithMaxHeight(len(labels)).
		Show()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCancelled, "menu aborted")
	}

	id, ok := byLabel[picked]
	if !ok {
		// pterm only returns presented options; treat anything else as
		// an invalid selection for the dispatcher to report.
		return "", errors.Newf(errors.ErrInvalidInput, "invalid option: %s", picked)
	}

	m.logger.Debug().Str("selected", id).Msg("Menu selection")
	return id, nil
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
