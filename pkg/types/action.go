package types

// ActionID identifies a registered action. Typed identifiers replace the
// numeric menu codes the underlying tools tend to grow.
type ActionID string

// Group names a set of mutually exclusive actions. At most one member of a
// group may be installed on the host at a time; installing another member
// requires confirmed removal of the active one first.
type Group string

// GroupNone marks an action that conflicts with nothing.
const GroupNone Group = ""

// Action is a named unit of system mutation. Actions are immutable once
// registered: the registry rejects duplicate identifiers and callers never
// mutate an Action after registration.
type Action struct {
	// ID is the unique identifier used for dispatch.
	ID ActionID

	// Label is the human-readable menu entry for this action.
	Label string

	// Group is the mutually-exclusive group this action belongs to,
	// or GroupNone.
	Group Group

	// Run performs the mutation against the session's collaborators.
	// It returns nil on success; any error is downgraded to a failed
	// MutationResult by the registry, never propagated as a crash.
	Run func(sess *Session) error
}

// ConflictMembers lists the package each group member is keyed on, used by
// the conflict resolver to probe the host for an active alternative.
type ConflictMembers map[ActionID]string
