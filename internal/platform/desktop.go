package platform

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// VLCPackage is the Android application id of VLC, also used as the key
// of its desktop executables.
const VLCPackage = "org.videolan.vlc"

// VLC command line
const (
	VLCTitleFlag = "--meta-title="
	ArgsEnd      = "--"
)

// DefaultPlayers returns the known desktop executables per application id
// for the given OS.
func DefaultPlayers(goos string) map[string][]string {
	switch goos {
	case OSDarwin:
		return map[string][]string{VLCPackage: {"/Applications/VLC.app/Contents/MacOS/VLC", "vlc"}}
	case OSWindows:
		return map[string][]string{VLCPackage: {
			`C:\Program Files\VideoLAN\VLC\vlc.exe`,
			`C:\Program Files (x86)\VideoLAN\VLC\vlc.exe`,
			"vlc.exe",
		}}
	default:
		return map[string][]string{VLCPackage: {"vlc", "/snap/bin/vlc", "/var/lib/flatpak/exports/bin/org.videolan.VLC"}}
	}
}

// DesktopHandlers maps constrained intents onto player executables and
// unconstrained ones onto a URLOpener. Intent flags have no desktop
// meaning: a spawned process is always a new task and reads the locator
// with the user's permissions.
type DesktopHandlers struct {
	players  map[string][]string
	opener   URLOpener
	runner   CommandRunner
	lookPath func(string) (string, error)
}

// NewDesktopHandlers creates handlers; players falls back to DefaultPlayers.
func NewDesktopHandlers(opener URLOpener, players map[string][]string, runner CommandRunner) *DesktopHandlers {
	if len(players) == 0 {
		players = DefaultPlayers(runtime.GOOS)
	}
	return &DesktopHandlers{players: players, opener: opener, runner: runner, lookPath: exec.LookPath}
}

func (d *DesktopHandlers) Resolve(_ context.Context, intent *Intent) (bool, error) {
	if !intent.IsConstrained() {
		return d.opener != nil, nil
	}
	_, ok := d.executable(intent.Package)
	return ok, nil
}

func (d *DesktopHandlers) Start(ctx context.Context, intent *Intent) error {
	if !intent.IsConstrained() {
		return d.open(intent)
	}
	exe, ok := d.executable(intent.Package)
	if !ok {
		return fmt.Errorf("%w: %s is not installed", ErrNoHandler, intent.Package)
	}
	var args []string
	if title, ok := intent.Extra(ExtraTitle); ok {
		args = append(args, VLCTitleFlag+title)
	}
	args = append(args, ArgsEnd, intent.Data)
	if err := d.runner.Start(ctx, exe, args...); err != nil {
		return fmt.Errorf("failed to start %s: %w", exe, err)
	}
	return nil
}

func (d *DesktopHandlers) open(intent *Intent) error {
	if d.opener == nil {
		return ErrNoHandler
	}
	u, err := LocatorURL(intent.Data)
	if err != nil {
		return err
	}
	if err := d.opener.OpenURL(u); err != nil {
		return fmt.Errorf("failed to open %s: %w", u, err)
	}
	return nil
}

// executable returns the first installed executable of the application.
func (d *DesktopHandlers) executable(pkg string) (string, bool) {
	for _, name := range d.players[pkg] {
		if path, err := d.lookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}
