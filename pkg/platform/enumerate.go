package platform

import "context"

// CommandEnumerator implements types.Enumerator by returning the raw output
// of one read-only host command. The capability detector classifies the
// text; this type never interprets it. Enumeration failures are returned as
// empty text so detection degrades to "unknown" instead of erroring.
type CommandEnumerator struct {
	runner *Runner
	name   string
	args   []string
}

// NewLspciEnumerator enumerates PCI devices for GPU vendor detection.
func NewLspciEnumerator(runner *Runner) *CommandEnumerator {
	return &CommandEnumerator{runner: runner, name: "lspci"}
}

// NewPactlEnumerator describes the running audio server.
func NewPactlEnumerator(runner *Runner) *CommandEnumerator {
	return &CommandEnumerator{runner: runner, name: "pactl", args: []string{"info"}}
}

// Enumerate returns the raw descriptor text.
func (e *CommandEnumerator) Enumerate(ctx context.Context) (string, error) {
	out, err := e.runner.Output(ctx, e.name, e.args...)
	if err != nil {
		return "", nil
	}
	return out, nil
}
