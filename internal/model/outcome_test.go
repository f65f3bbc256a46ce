package model

import "testing"

func TestLaunchOutcome_IsHandled(t *testing.T) {
	tests := []struct {
		outcome  LaunchOutcome
		expected bool
	}{
		{OutcomeTarget, true},
		{OutcomeFallback, true},
		{OutcomeFailed, false},
	}

	for _, test := range tests {
		result := test.outcome.IsHandled()
		if result != test.expected {
			t.Errorf("LaunchOutcome(%s).IsHandled() = %v, expected %v", test.outcome, result, test.expected)
		}
	}
}

func TestLaunchOutcome_Legacy(t *testing.T) {
	tests := []struct {
		outcome  LaunchOutcome
		expected bool
	}{
		{OutcomeTarget, true},
		{OutcomeFallback, false},
		{OutcomeFailed, false},
	}

	for _, test := range tests {
		result := test.outcome.Legacy()
		if result != test.expected {
			t.Errorf("LaunchOutcome(%s).Legacy() = %v, expected %v", test.outcome, result, test.expected)
		}
	}
}

func TestLaunchOutcome_String(t *testing.T) {
	if OutcomeFallback.String() != "fallback" {
		t.Errorf("Expected 'fallback', got '%s'", OutcomeFallback.String())
	}
}

func TestNewLaunchRequest(t *testing.T) {
	r := NewLaunchRequest("http://example.com/a.mkv", "")
	if r.HasTitle() {
		t.Error("Expected no title for empty string")
	}

	r = NewLaunchRequest("http://example.com/a.mkv", "Movie")
	if !r.HasTitle() || *r.Title != "Movie" {
		t.Errorf("Expected title 'Movie', got %v", r.Title)
	}
}

func TestLaunchResult_Legacy(t *testing.T) {
	if !(LaunchResult{Outcome: OutcomeTarget}).Legacy() {
		t.Error("Expected target result to report true")
	}
	if (LaunchResult{Outcome: OutcomeFallback}).Legacy() {
		t.Error("Expected fallback result to report false")
	}
}

func TestLaunchResult_LegacyDiffersFromIsHandled(t *testing.T) {
	r := LaunchResult{Outcome: OutcomeFallback}
	if !r.Outcome.IsHandled() || r.Legacy() {
		t.Errorf("Expected a handled fallback with legacy false, got IsHandled=%v Legacy=%v", r.Outcome.IsHandled(), r.Legacy())
	}
}
