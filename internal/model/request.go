package model

// LaunchRequest is a locator to open together with an optional display title.
type LaunchRequest struct {
	Locator string
	Title   *string
}

// NewLaunchRequest creates a request; an empty title means no title.
func NewLaunchRequest(locator, title string) LaunchRequest {
	r := LaunchRequest{Locator: locator}
	if title != "" {
		r.Title = &title
	}
	return r
}

// HasTitle reports whether the request carries a title.
func (r LaunchRequest) HasTitle() bool { return r.Title != nil }

// LaunchResult is the outcome of a launch with the runtime error, if any.
// Err is only set for OutcomeFailed.
type LaunchResult struct {
	Outcome LaunchOutcome
	Err     error
}

// Legacy is the boolean view of the result, true only for OutcomeTarget.
func (r LaunchResult) Legacy() bool { return r.Outcome.Legacy() }

// MemoryReport is the total device memory in whole megabytes.
// Assumed is set when the platform query failed and TotalMB holds the
// configured default instead of a measured value.
type MemoryReport struct {
	TotalMB int
	Assumed bool
	Err     error
}
