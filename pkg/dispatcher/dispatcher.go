// Package dispatcher drives the interactive menu loop: render the
// registered actions, dispatch one selection to completion, repeat until
// the operator exits or cancels.
package dispatcher

import (
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/registry"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/ui/prompt"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/ui/style"
)

// State is the dispatcher's position in its loop.
type State string

const (
	StateIdle        State = "idle"
	StateDisplaying  State = "displaying"
	StateDispatching State = "dispatching"
	StateExited      State = "exited"
)

// ExitID is the reserved menu entry that ends the loop.
const ExitID = "exit"

// Dispatcher renders the menu and routes selections through the action
// registry. Strictly sequential: one selection is handled to completion
// before the next is accepted.
type Dispatcher struct {
	actions *registry.Actions
	menu    prompt.Menu
	state   State
	logger  zerolog.Logger
}

// New creates a dispatcher over the given registry and menu collaborator.
func New(actions *registry.Actions, menu prompt.Menu) *Dispatcher {
	return &Dispatcher{
		actions: actions,
		menu:    menu,
		state:   StateIdle,
		logger:  logging.GetLogger("dispatcher"),
	}
}

// State returns the current loop state.
func (d *Dispatcher) State() State {
	return d.state
}

// Run loops until the operator selects Exit or cancels a prompt. Both are
// graceful endings and return nil; only internal errors surface.
func (d *Dispatcher) Run(sess *types.Session) error {
	d.state = StateDisplaying

	for d.state != StateExited {
		selection, err := d.menu.Select("CachyOS KDE optimization", d.entries())
		if err != nil {
			if errors.IsCancellation(err) {
				d.logger.Info().Msg("Menu cancelled, exiting")
				d.state = StateExited
				return nil
			}
			// Invalid selection: report and return to the menu with
			// no side effects.
			if errors.IsErrorCode(err, errors.ErrInvalidInput) {
				pterm.Warning.Println(err.Error())
				continue
			}
			d.state = StateExited
			return err
		}

		if selection == ExitID {
			d.state = StateExited
			return nil
		}

		if !d.actions.Has(types.ActionID(selection)) {
			// Never transition to Dispatching on an unrecognized id.
			pterm.Warning.Printfln("invalid option: %s", selection)
			continue
		}

		d.state = StateDispatching
		result, err := d.actions.Invoke(sess, types.ActionID(selection))
		d.report(result)
		d.state = StateDisplaying

		if err != nil && errors.IsCancellation(err) {
			d.logger.Info().Msg("Prompt cancelled mid-action, exiting")
			d.state = StateExited
			return nil
		}
	}

	return nil
}

// entries builds the menu in registration order plus the Exit entry.
func (d *Dispatcher) entries() []prompt.MenuEntry {
	ids := d.actions.IDs()
	entries := make([]prompt.MenuEntry, 0, len(ids)+1)
	for _, id := range ids {
		action, err := d.actions.Get(id)
		if err != nil {
			continue
		}
		entries = append(entries, prompt.MenuEntry{ID: string(id), Label: action.Label})
	}
	entries = append(entries, prompt.MenuEntry{ID: ExitID, Label: "Exit"})
	return entries
}

// report prints a distinguishable line per outcome; non-fatal failures are
// warnings the operator can act on, never silence.
func (d *Dispatcher) report(result types.MutationResult) {
	marker := style.StatusStyle(result.Status).Sprint(style.StatusMarker(result.Status))
	switch result.Status {
	case types.StatusSuccess:
		pterm.Success.Printfln("%s: %s", result.Action, marker)
	case types.StatusFailure:
		pterm.Warning.Printfln("%s: %s (%v)", result.Action, marker, result.Err)
	default:
		pterm.Info.Printfln("%s: %s %s", result.Action, marker, result.Message)
	}
}
