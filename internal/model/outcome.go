package model

// LaunchOutcome tells which path handled a launch request
type LaunchOutcome string

const (
	// OutcomeTarget means the specifically targeted player took the request
	OutcomeTarget LaunchOutcome = "target"

	// OutcomeFallback means the player was unavailable and the platform
	// picked a handler for the unconstrained request
	OutcomeFallback LaunchOutcome = "fallback"

	// OutcomeFailed means building or dispatching the request raised an error
	OutcomeFailed LaunchOutcome = "failed"
)

// String returns the string representation of LaunchOutcome
func (o LaunchOutcome) String() string {
	return string(o)
}

// IsHandled returns true if some application received the request
func (o LaunchOutcome) IsHandled() bool {
	return o == OutcomeTarget || o == OutcomeFallback
}

// Legacy collapses the outcome into the boolean reported by launchVLC:
// only the targeted player counts as success.
func (o LaunchOutcome) Legacy() bool {
	return o == OutcomeTarget
}
