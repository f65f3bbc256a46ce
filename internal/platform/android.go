package platform

import (
	"bytes"
	"context"
	"fmt"
)

// Activity manager commands
const (
	AMCommand       = "am"
	AMStart         = "start"
	PMCommand       = "cmd"
	PMResolveAction = "resolve-activity"
	PMBriefFlag     = "--brief"
)

// Markers in activity manager output
var (
	noActivityMarker = []byte("No activity found")
	amErrorMarker    = []byte("Error:")
)

// AndroidHandlers talks to the activity manager through its shell commands.
type AndroidHandlers struct {
	runner CommandRunner
}

func NewAndroidHandlers(runner CommandRunner) *AndroidHandlers {
	return &AndroidHandlers{runner: runner}
}

// Resolve asks the package manager for an activity matching the intent.
func (a *AndroidHandlers) Resolve(ctx context.Context, intent *Intent) (bool, error) {
	args := append([]string{"package", PMResolveAction, PMBriefFlag}, intent.Args()...)
	out, err := a.runner.Output(ctx, PMCommand, args...)
	// the marker wins over the exit code, some builds exit 1 with it
	if bytes.Contains(out, noActivityMarker) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resolve %v: %w: %s", intent, err, bytes.TrimSpace(out))
	}
	return len(bytes.TrimSpace(out)) > 0, nil
}

// Start sends the intent with `am start`, which returns once the
// activity manager accepted it.
func (a *AndroidHandlers) Start(ctx context.Context, intent *Intent) error {
	args := append([]string{AMStart}, intent.Args()...)
	out, err := a.runner.Output(ctx, AMCommand, args...)
	if err != nil {
		return fmt.Errorf("am start %v: %w: %s", intent, err, bytes.TrimSpace(out))
	}
	if i := bytes.Index(out, amErrorMarker); i >= 0 {
		return fmt.Errorf("%w: %s", ErrDispatch, firstLine(out[i:]))
	}
	return nil
}

func firstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimSpace(b))
}
