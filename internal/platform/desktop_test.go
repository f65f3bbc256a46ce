package platform

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newTestDesktop(installed map[string]string, opener URLOpener, runner *fakeRunner) *DesktopHandlers {
	d := NewDesktopHandlers(opener, map[string][]string{VLCPackage: {"vlc", "/opt/vlc/bin/vlc"}}, runner)
	d.lookPath = func(name string) (string, error) {
		if p, ok := installed[name]; ok {
			return p, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	return d
}

func TestDesktopResolve(t *testing.T) {
	vlc := NewViewIntent("http://x/v.mkv", MimeVideo).SetPackage(VLCPackage)
	ctx := context.Background()

	d := newTestDesktop(map[string]string{"/opt/vlc/bin/vlc": "/opt/vlc/bin/vlc"}, nil, &fakeRunner{})
	if ok, _ := d.Resolve(ctx, vlc); !ok {
		t.Error("Expected VLC to resolve through the second candidate")
	}

	d = newTestDesktop(nil, nil, &fakeRunner{})
	if ok, _ := d.Resolve(ctx, vlc); ok {
		t.Error("Expected VLC not to resolve when not installed")
	}
	if ok, _ := d.Resolve(ctx, vlc.Unconstrained()); ok {
		t.Error("Expected unconstrained intent not to resolve without an opener")
	}

	d = newTestDesktop(nil, &fakeOpener{}, &fakeRunner{})
	if ok, _ := d.Resolve(ctx, vlc.Unconstrained()); !ok {
		t.Error("Expected unconstrained intent to resolve with an opener")
	}
	if ok, _ := d.Resolve(ctx, NewViewIntent("http://x", MimeVideo).SetPackage("com.unknown")); ok {
		t.Error("Expected unknown package not to resolve")
	}
}

func TestDesktopStart_Player(t *testing.T) {
	runner := &fakeRunner{}
	d := newTestDesktop(map[string]string{"vlc": "/usr/bin/vlc"}, nil, runner)

	intent := NewViewIntent("http://x/v.mkv", MimeVideo).SetPackage(VLCPackage).PutExtra(ExtraTitle, "Movie")
	if err := d.Start(context.Background(), intent); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(runner.starts) != 1 {
		t.Fatalf("Expected one spawned process, got %d", len(runner.starts))
	}
	got := runner.starts[0]
	if got.name != "/usr/bin/vlc" {
		t.Errorf("Expected /usr/bin/vlc, got %s", got.name)
	}
	expected := []string{"--meta-title=Movie", "--", "http://x/v.mkv"}
	if !reflect.DeepEqual(got.args, expected) {
		t.Errorf("Expected args %v, got %v", expected, got.args)
	}
}

func TestDesktopStart_PlayerWithoutTitle(t *testing.T) {
	runner := &fakeRunner{}
	d := newTestDesktop(map[string]string{"vlc": "/usr/bin/vlc"}, nil, runner)

	if err := d.Start(context.Background(), NewViewIntent("http://x/v.mkv", MimeVideo).SetPackage(VLCPackage)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expected := []string{"--", "http://x/v.mkv"}
	if !reflect.DeepEqual(runner.starts[0].args, expected) {
		t.Errorf("Expected args %v, got %v", expected, runner.starts[0].args)
	}
}

func TestDesktopStart_PlayerMissing(t *testing.T) {
	d := newTestDesktop(nil, nil, &fakeRunner{})

	err := d.Start(context.Background(), NewViewIntent("http://x/v.mkv", MimeVideo).SetPackage(VLCPackage))
	if !errors.Is(err, ErrNoHandler) {
		t.Errorf("Expected ErrNoHandler, got %v", err)
	}
}

func TestDesktopStart_Opener(t *testing.T) {
	opener := &fakeOpener{}
	runner := &fakeRunner{}
	d := newTestDesktop(map[string]string{"vlc": "/usr/bin/vlc"}, opener, runner)

	if err := d.Start(context.Background(), NewViewIntent("http://x/v.mkv", MimeVideo)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(runner.starts) != 0 {
		t.Errorf("Expected no player process, got %v", runner.starts)
	}
	if !reflect.DeepEqual(opener.opened, []string{"http://x/v.mkv"}) {
		t.Errorf("Unexpected opened URLs: %v", opener.opened)
	}
}

func TestDesktopStart_OpenerError(t *testing.T) {
	d := newTestDesktop(nil, &fakeOpener{err: errors.New("xdg-open missing")}, &fakeRunner{})

	if err := d.Start(context.Background(), NewViewIntent("http://x/v.mkv", MimeVideo)); err == nil {
		t.Error("Expected error, got nil")
	}

	d = newTestDesktop(nil, nil, &fakeRunner{})
	if err := d.Start(context.Background(), NewViewIntent("http://x/v.mkv", MimeVideo)); !errors.Is(err, ErrNoHandler) {
		t.Errorf("Expected ErrNoHandler without opener, got %v", err)
	}
}

func TestDefaultPlayers(t *testing.T) {
	for _, goos := range []string{OSLinux, OSDarwin, OSWindows} {
		if len(DefaultPlayers(goos)[VLCPackage]) == 0 {
			t.Errorf("Expected VLC executables for %s", goos)
		}
	}
}
