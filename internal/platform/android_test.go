package platform

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAndroidResolve(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		err      error
		expected bool
		wantErr  bool
	}{
		{name: "found", output: "priority=0 preferredOrder=0 match=0x608000\norg.videolan.vlc/.gui.video.VideoPlayerActivity\n", expected: true},
		{name: "not found", output: "No activity found\n", expected: false},
		{name: "not found with exit code", output: "No activity found\n", err: errors.New("exit status 1"), expected: false},
		{name: "empty output", output: "", expected: false},
		{name: "command failed", output: "cmd: not found", err: errors.New("exit status 127"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{output: []byte(tt.output), err: tt.err}
			h := NewAndroidHandlers(runner)

			ok, err := h.Resolve(context.Background(), NewViewIntent("http://x/v.mkv", MimeVideo).SetPackage(VLCPackage))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if ok != tt.expected {
				t.Errorf("Resolve() = %v, expected %v", ok, tt.expected)
			}

			if len(runner.outputs) != 1 {
				t.Fatalf("Expected one command, got %d", len(runner.outputs))
			}
			call := runner.outputs[0].String()
			if !strings.HasPrefix(call, "cmd package resolve-activity --brief -a android.intent.action.VIEW") {
				t.Errorf("Unexpected command: %s", call)
			}
			if !strings.Contains(call, "-p org.videolan.vlc") {
				t.Errorf("Expected package constraint in command: %s", call)
			}
		})
	}
}

func TestAndroidStart(t *testing.T) {
	runner := &fakeRunner{output: []byte("Starting: Intent { act=android.intent.action.VIEW }\n")}
	h := NewAndroidHandlers(runner)

	if err := h.Start(context.Background(), NewViewIntent("http://x/v.mkv", MimeVideo)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := runner.outputs[0].String(); got != "am start -a android.intent.action.VIEW -d http://x/v.mkv -t video/*" {
		t.Errorf("Unexpected command: %s", got)
	}
}

func TestAndroidStart_ErrorInOutput(t *testing.T) {
	runner := &fakeRunner{output: []byte("Starting: Intent { ... }\nError: Activity not started, unable to resolve Intent\n")}
	h := NewAndroidHandlers(runner)

	err := h.Start(context.Background(), NewViewIntent("http://x/v.mkv", MimeVideo))
	if !errors.Is(err, ErrDispatch) {
		t.Fatalf("Expected ErrDispatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "Activity not started") {
		t.Errorf("Expected am message in error, got %v", err)
	}
}

func TestAndroidStart_CommandError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 255")}
	h := NewAndroidHandlers(runner)

	if err := h.Start(context.Background(), NewViewIntent("http://x/v.mkv", MimeVideo)); err == nil {
		t.Error("Expected error, got nil")
	}
}
