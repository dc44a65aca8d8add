// Package sequencer runs a fixed ordered list of actions end to end with
// no per-step menu interaction. Sequencing is fail-soft: a failed step is
// reported and the run continues; only a cancelled confirmation stops it.
package sequencer

import (
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/registry"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

// Report is the aggregated outcome of one auto-pilot run.
type Report struct {
	Results   []types.MutationResult
	Summary   types.Summary
	Cancelled bool
}

// Sequencer executes registry actions in a fixed order.
type Sequencer struct {
	actions *registry.Actions
	logger  zerolog.Logger
}

// New creates a sequencer over the given registry.
func New(actions *registry.Actions) *Sequencer {
	return &Sequencer{
		actions: actions,
		logger:  logging.GetLogger("sequencer"),
	}
}

// Run invokes every step of sequence in order. Individual failures never
// short-circuit the run; conflicts still go through the confirmation gate,
// and declining only skips that one step. A cancelled prompt is the single
// way to stop early. The report aggregates all results without reraising.
func (s *Sequencer) Run(sess *types.Session, sequence []types.ActionID) Report {
	report := Report{Results: make([]types.MutationResult, 0, len(sequence))}

	s.logger.Info().Int("steps", len(sequence)).Msg("Auto-pilot started")

	for i, id := range sequence {
		pterm.DefaultSection.Printfln("[%d/%d] %s", i+1, len(sequence), id)

		result, err := s.actions.Invoke(sess, id)
		report.Results = append(report.Results, result)

		if result.Status == types.StatusFailure {
			pterm.Warning.Printfln("%s failed: %v (continuing)", id, result.Err)
		}

		if err != nil && errors.IsCancellation(err) {
			s.logger.Warn().Str("action", string(id)).Msg("Auto-pilot cancelled at confirmation gate")
			report.Cancelled = true
			break
		}
	}

	report.Summary = types.Summarize(report.Results)
	s.logger.Info().
		Int("succeeded", report.Summary.Succeeded).
		Int("failed", report.Summary.Failed).
		Int("declined", report.Summary.Declined).
		Int("skipped", report.Summary.Skipped).
		Bool("cancelled", report.Cancelled).
		Msg("Auto-pilot finished")

	return report
}
