package platform

import (
	"context"
	"fmt"
	"net/url"
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	CmdCommand     = "cmd"
	StartCommand   = "start"
	WindowsCmdFlag = "/c"
)

// SystemOpener opens URLs with the default application using the OS
// command line tools. It is used when no fyne app is available.
type SystemOpener struct {
	goos   string
	runner CommandRunner
}

func NewSystemOpener(goos string, runner CommandRunner) *SystemOpener {
	return &SystemOpener{goos: goos, runner: runner}
}

func (o *SystemOpener) OpenURL(u *url.URL) error {
	if u == nil {
		return fmt.Errorf("nil url")
	}
	ctx := context.Background()
	target := u.String()
	switch o.goos {
	case OSDarwin:
		return o.runner.Start(ctx, OpenCommand, target)
	case OSWindows:
		return o.runner.Start(ctx, CmdCommand, WindowsCmdFlag, StartCommand, "", target)
	case OSAndroid:
		return NewAndroidHandlers(o.runner).Start(ctx, NewViewIntent(target, "").AddFlags(FlagActivityNewTask))
	case OSLinux:
		return o.runner.Start(ctx, XDGOpenCommand, target)
	default:
		return fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
