package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ytget/player-bridge/internal/bridge"
	"github.com/ytget/player-bridge/internal/channel"
	"github.com/ytget/player-bridge/internal/config"
	"github.com/ytget/player-bridge/internal/logger"
	"github.com/ytget/player-bridge/internal/model"
	"github.com/ytget/player-bridge/internal/transport"
)

func newTestBridge(t *testing.T) string {
	t.Helper()
	reg := channel.NewRegistry(logger.Nop())
	reg.SetMethodCallHandler(config.DefaultPlayerChannel, channel.Methods{
		bridge.MethodLaunchVLC: func(_ context.Context, _ *channel.MethodCall, result channel.Result) {
			result.Success(true)
		},
		bridge.MethodLaunchPlayer: func(_ context.Context, call *channel.MethodCall, result channel.Result) {
			if !call.HasArgument(bridge.ArgURL) {
				result.Error(channel.CodeInvalidArgument, "URL is required", nil)
				return
			}
			result.Success(bridge.LaunchReply{Outcome: model.OutcomeFallback})
		},
	})
	reg.SetMethodCallHandler(config.DefaultDeviceInfoChannel, channel.Methods{
		bridge.MethodGetTotalMemory: func(_ context.Context, _ *channel.MethodCall, result channel.Result) {
			result.Success(4096)
		},
		bridge.MethodGetMemoryReport: func(_ context.Context, _ *channel.MethodCall, result channel.Result) {
			result.Success(bridge.MemoryReply{TotalMB: 2048, Assumed: true})
		},
	})
	h := transport.NewHandler(reg, nil, "", logger.Nop())
	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		h.Close()
		srv.Close()
	})
	return strings.TrimPrefix(srv.URL, "http://")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	addr := newTestBridge(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "launch", args: []string{"launch", "-a", addr, "http://x/v.mkv"}, expected: "fallback\n"},
		{name: "launch legacy", args: []string{"launch", "-a", addr, "--legacy", "http://x/v.mkv"}, expected: "true\n"},
		{name: "memory", args: []string{"memory", "-a", addr, "--report=false"}, expected: "4096 MB\n"},
		{name: "memory report", args: []string{"memory", "-a", addr, "--report"}, expected: "\"assumed\": true"},
		{name: "call", args: []string{"call", "-a", addr, config.DefaultDeviceInfoChannel, bridge.MethodGetTotalMemory}, expected: "4096\n"},
		{name: "call with arguments", args: []string{"call", "-a", addr, config.DefaultPlayerChannel, bridge.MethodLaunchVLC, `{"url":"x"}`}, expected: "true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.expected) {
				t.Errorf("Expected %q in %q", tt.expected, out)
			}
		})
	}
}

func TestCommands_Errors(t *testing.T) {
	addr := newTestBridge(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "not implemented", args: []string{"call", "-a", addr, config.DefaultPlayerChannel, "launchMX"}},
		{name: "invalid JSON", args: []string{"call", "-a", addr, config.DefaultPlayerChannel, bridge.MethodLaunchVLC, "{"}},
		{name: "channel error", args: []string{"call", "-a", addr, config.DefaultPlayerChannel, bridge.MethodLaunchPlayer, "{}"}},
		{name: "no bridge", args: []string{"memory", "-a", "127.0.0.1:1", "--report=false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
