// Package bridge exposes the player launcher and the memory reporter as
// method channels. One Bridge registers both channels; their names come
// from the configuration.
package bridge

import (
	"context"
	"errors"

	"github.com/ytget/player-bridge/internal/channel"
	"github.com/ytget/player-bridge/internal/launcher"
	"github.com/ytget/player-bridge/internal/logger"
	"github.com/ytget/player-bridge/internal/model"
)

// Method names
const (
	MethodLaunchVLC       = "launchVLC"
	MethodLaunchPlayer    = "launchPlayer"
	MethodGetTotalMemory  = "getTotalMemory"
	MethodGetMemoryReport = "getMemoryReport"
)

// Argument keys
const (
	ArgURL   = "url"
	ArgTitle = "title"
)

const msgURLRequired = "URL is required"

// Launcher opens locators with the player.
type Launcher interface {
	Launch(ctx context.Context, req model.LaunchRequest) (model.LaunchResult, error)
}

// Reporter reports total device memory.
type Reporter interface {
	Report(ctx context.Context) model.MemoryReport
}

// Observer receives the results for metrics.
type Observer interface {
	ObserveLaunch(outcome model.LaunchOutcome)
	ObserveMemory(report model.MemoryReport)
}

type Channels struct {
	Player     string
	DeviceInfo string
}

// LaunchReply is the result of launchPlayer.
type LaunchReply struct {
	Outcome model.LaunchOutcome `json:"outcome"`
	Error   string              `json:"error,omitempty"`
}

// MemoryReply is the result of getMemoryReport.
type MemoryReply struct {
	TotalMB int  `json:"totalMb"`
	Assumed bool `json:"assumed"`
}

type Bridge struct {
	channels Channels
	launcher Launcher
	reporter Reporter
	observer Observer
	log      *logger.Logger
}

func New(channels Channels, l Launcher, r Reporter, o Observer, log *logger.Logger) *Bridge {
	return &Bridge{channels: channels, launcher: l, reporter: r, observer: o, log: log}
}

// Register installs both channels in the registry.
func (b *Bridge) Register(reg *channel.Registry) {
	reg.SetMethodCallHandler(b.channels.Player, channel.Methods{
		MethodLaunchVLC:    b.launchVLC,
		MethodLaunchPlayer: b.launchPlayer,
	})
	reg.SetMethodCallHandler(b.channels.DeviceInfo, channel.Methods{
		MethodGetTotalMemory:  b.getTotalMemory,
		MethodGetMemoryReport: b.getMemoryReport,
	})
}

func (b *Bridge) launchVLC(ctx context.Context, call *channel.MethodCall, result channel.Result) {
	res, ok := b.launch(ctx, call, result)
	if ok {
		result.Success(res.Legacy())
	}
}

func (b *Bridge) launchPlayer(ctx context.Context, call *channel.MethodCall, result channel.Result) {
	res, ok := b.launch(ctx, call, result)
	if !ok {
		return
	}
	reply := LaunchReply{Outcome: res.Outcome}
	if res.Err != nil {
		reply.Error = res.Err.Error()
	}
	result.Success(reply)
}

// launch replies with an error itself when the arguments are invalid.
func (b *Bridge) launch(ctx context.Context, call *channel.MethodCall, result channel.Result) (model.LaunchResult, bool) {
	url, err := call.OptionalString(ArgURL)
	if err != nil {
		result.Error(channel.CodeInvalidArgument, err.Error(), nil)
		return model.LaunchResult{}, false
	}
	title, err := call.OptionalString(ArgTitle)
	if err != nil {
		result.Error(channel.CodeInvalidArgument, err.Error(), nil)
		return model.LaunchResult{}, false
	}
	if url == nil || *url == "" {
		result.Error(channel.CodeInvalidArgument, msgURLRequired, nil)
		return model.LaunchResult{}, false
	}

	res, err := b.launcher.Launch(ctx, model.LaunchRequest{Locator: *url, Title: title})
	if errors.Is(err, launcher.ErrInvalidArgument) {
		result.Error(channel.CodeInvalidArgument, err.Error(), nil)
		return model.LaunchResult{}, false
	}
	if b.observer != nil {
		b.observer.ObserveLaunch(res.Outcome)
	}
	b.log.Debug().Str(logger.IdField, logger.RequestId(ctx)).Str("outcome", res.Outcome.String()).Msg("Launch")
	return res, true
}

func (b *Bridge) getTotalMemory(ctx context.Context, _ *channel.MethodCall, result channel.Result) {
	result.Success(b.report(ctx).TotalMB)
}

func (b *Bridge) getMemoryReport(ctx context.Context, _ *channel.MethodCall, result channel.Result) {
	report := b.report(ctx)
	result.Success(MemoryReply{TotalMB: report.TotalMB, Assumed: report.Assumed})
}

func (b *Bridge) report(ctx context.Context) model.MemoryReport {
	report := b.reporter.Report(ctx)
	if b.observer != nil {
		b.observer.ObserveMemory(report)
	}
	return report
}
