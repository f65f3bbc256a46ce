package platform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

var (
	// ErrNoHandler is returned when nothing can take a request.
	ErrNoHandler = errors.New("no application can handle the request")
	// ErrDispatch is returned when the platform refused a request.
	ErrDispatch = errors.New("dispatch failed")
)

// Handlers resolves and dispatches intents.
type Handlers interface {
	// Resolve reports whether any installed application can take the intent.
	Resolve(ctx context.Context, intent *Intent) (bool, error)
	// Start hands the intent over to the platform and returns
	// without waiting for the receiving application.
	Start(ctx context.Context, intent *Intent) error
}

// URLOpener opens a URL with whatever the platform considers the default
// handler. fyne.App satisfies it.
type URLOpener interface {
	OpenURL(u *url.URL) error
}

// CommandRunner runs external commands.
type CommandRunner interface {
	// Output runs the command to completion and returns its combined output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Start spawns the command and returns as soon as it is running.
	Start(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Start detaches the child from ctx so that it outlives the request.
func (ExecRunner) Start(_ context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// IsAndroid checks if the process runs on Android, including
// desktop-GOOS builds running inside an Android userland.
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		os.Getenv("ANDROID_STORAGE") != ""
}

// NewHandlers picks the handlers for the current platform.
// players maps an application id to its desktop executables and may be nil.
func NewHandlers(opener URLOpener, players map[string][]string) Handlers {
	if IsAndroid() {
		return NewAndroidHandlers(ExecRunner{})
	}
	return NewDesktopHandlers(opener, players, ExecRunner{})
}

// LocatorURL parses a locator; plain filesystem paths become file:// URLs.
func LocatorURL(locator string) (*url.URL, error) {
	if locator == "" {
		return nil, fmt.Errorf("empty locator")
	}
	u, err := url.Parse(locator)
	// single letter schemes are Windows drive letters
	if err == nil && len(u.Scheme) > 1 {
		return u, nil
	}
	abs, err := filepath.Abs(locator)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	path := filepath.ToSlash(abs)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &url.URL{Scheme: "file", Path: path}, nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}
