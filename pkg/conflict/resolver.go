// Package conflict enforces the mutually-exclusive-group invariant: an
// action never mutates the host while a conflicting alternative is
// installed, unless the operator confirmed its removal first.
package conflict

import (
	"github.com/rs/zerolog"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

// Resolver detects installed alternatives within a group and routes their
// removal through the confirmation gate.
type Resolver struct {
	groups map[types.Group]groupSpec
	logger zerolog.Logger
}

type groupSpec struct {
	// members maps each action in the group to the host packages that
	// mark and constitute that alternative.
	members map[types.ActionID][]string
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		groups: make(map[types.Group]groupSpec),
		logger: logging.GetLogger("conflict"),
	}
}

// AddMember declares that action, when installed, is represented on the
// host by pkgs. The first package is the probe used to decide whether the
// alternative is active; all of them are removed on a confirmed switch.
func (r *Resolver) AddMember(group types.Group, action types.ActionID, pkgs []string) {
	if group == types.GroupNone || len(pkgs) == 0 {
		return
	}
	spec, ok := r.groups[group]
	if !ok {
		spec = groupSpec{members: make(map[types.ActionID][]string)}
		r.groups[group] = spec
	}
	spec.members[action] = pkgs
}

// Check returns the identifier of an installed group member other than
// incoming, or false when the group is clear.
func (r *Resolver) Check(sess *types.Session, group types.Group, incoming types.ActionID) (types.ActionID, bool) {
	spec, ok := r.groups[group]
	if !ok {
		return "", false
	}

	for member, pkgs := range spec.members {
		if member == incoming {
			continue
		}
		installed, err := sess.Pkgs.IsInstalled(sess.Context(), pkgs[0])
		if err != nil {
			r.logger.Warn().Err(err).Str("package", pkgs[0]).Msg("Conflict probe failed, assuming not installed")
			continue
		}
		if installed {
			return member, true
		}
	}
	return "", false
}

// Resolve clears the way for incoming to run. When a conflicting member is
// active it asks the gate exactly once:
//   - approved: the conflicting packages are removed before returning;
//   - declined: an ErrConflictDeclined error is returned so the caller
//     surfaces a distinct "skipped due to conflict" result, never silence;
//   - prompt aborted: the cancellation propagates untouched.
func (r *Resolver) Resolve(sess *types.Session, group types.Group, incoming types.ActionID) error {
	active, found := r.Check(sess, group, incoming)
	if !found {
		return nil
	}

	r.logger.Info().
		Str("group", string(group)).
		Str("incoming", string(incoming)).
		Str("active", string(active)).
		Msg("Conflicting alternative detected")

	ok, err := sess.Gate.Ask("'" + string(active) + "' is currently installed and conflicts with '" +
		string(incoming) + "'. Remove it?")
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.ErrConflictDeclined,
			"kept '%s'; '%s' skipped due to conflict", active, incoming)
	}

	pkgs := r.groups[group].members[active]
	if err := sess.Mutator.Remove(sess.Context(), pkgs); err != nil {
		return errors.Wrapf(err, errors.ErrConflictRemoval,
			"failed to remove conflicting '%s'", active)
	}
	return nil
}
