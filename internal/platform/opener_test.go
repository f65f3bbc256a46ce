package platform

import (
	"net/url"
	"path/filepath"
	"strings"
	"testing"
)

func TestSystemOpener(t *testing.T) {
	u, _ := url.Parse("https://example.com/v.mkv")

	tests := []struct {
		goos     string
		expected string
	}{
		{OSLinux, "xdg-open https://example.com/v.mkv"},
		{OSDarwin, "open https://example.com/v.mkv"},
		{OSWindows, "cmd /c start  https://example.com/v.mkv"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			runner := &fakeRunner{}
			if err := NewSystemOpener(tt.goos, runner).OpenURL(u); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(runner.starts) != 1 || runner.starts[0].String() != tt.expected {
				t.Errorf("Expected %q, got %v", tt.expected, runner.starts)
			}
		})
	}
}

func TestSystemOpener_Android(t *testing.T) {
	u, _ := url.Parse("https://example.com/v.mkv")
	runner := &fakeRunner{}

	if err := NewSystemOpener(OSAndroid, runner).OpenURL(u); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	got := runner.outputs[0].String()
	if !strings.HasPrefix(got, "am start -a android.intent.action.VIEW -d https://example.com/v.mkv") {
		t.Errorf("Unexpected command: %s", got)
	}
}

func TestSystemOpener_Unsupported(t *testing.T) {
	u, _ := url.Parse("https://example.com/v.mkv")
	if err := NewSystemOpener("plan9", &fakeRunner{}).OpenURL(u); err == nil {
		t.Error("Expected error for unsupported OS, got nil")
	}
}

func TestLocatorURL(t *testing.T) {
	u, err := LocatorURL("https://example.com/a.mkv?t=10")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if u.Scheme != "https" {
		t.Errorf("Expected https scheme, got %s", u.Scheme)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "movie.mkv")
	u, err = LocatorURL(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if u.Scheme != "file" {
		t.Errorf("Expected file scheme, got %s", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/movie.mkv") {
		t.Errorf("Expected path to end with movie.mkv, got %s", u.Path)
	}

	if _, err := LocatorURL(""); err == nil {
		t.Error("Expected error for empty locator, got nil")
	}
}
