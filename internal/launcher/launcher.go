// Package launcher hands media locators over to an external player.
//
// The launcher first asks the platform whether the configured player can
// take the request. If it can, the request goes to the player; otherwise
// an unconstrained copy goes to whatever handler the platform picks.
// Runtime failures never escape as Go errors: they are reported as
// model.OutcomeFailed with the error attached to the result.
package launcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/ytget/player-bridge/internal/logger"
	"github.com/ytget/player-bridge/internal/model"
	"github.com/ytget/player-bridge/internal/platform"
)

// ErrInvalidArgument is returned for requests that must not be attempted.
var ErrInvalidArgument = errors.New("invalid argument")

// Default player target
const (
	DefaultPackage  = platform.VLCPackage
	DefaultMimeType = platform.MimeVideo
)

// launchFlags lets the receiver run as its own task and read the locator
// even when it lives behind another application's permissions.
const launchFlags = platform.FlagActivityNewTask | platform.FlagGrantReadURIPermission

type Launcher struct {
	handlers platform.Handlers
	pkg      string
	mimeType string
	log      *logger.Logger
}

type Option func(*Launcher)

// WithPackage sets the targeted application id.
func WithPackage(pkg string) Option {
	return func(l *Launcher) {
		if pkg != "" {
			l.pkg = pkg
		}
	}
}

// WithMimeType sets the media type of launched locators.
func WithMimeType(mimeType string) Option {
	return func(l *Launcher) {
		if mimeType != "" {
			l.mimeType = mimeType
		}
	}
}

func New(handlers platform.Handlers, log *logger.Logger, opts ...Option) *Launcher {
	l := &Launcher{handlers: handlers, pkg: DefaultPackage, mimeType: DefaultMimeType, log: log}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Intent builds the request constrained to the player.
func (l *Launcher) Intent(req model.LaunchRequest) *platform.Intent {
	intent := platform.NewViewIntent(req.Locator, l.mimeType).
		SetPackage(l.pkg).
		AddFlags(launchFlags)
	if req.HasTitle() {
		intent.PutExtra(platform.ExtraTitle, *req.Title)
	}
	return intent
}

// Launch opens the locator with the player or, if the player is missing,
// with the platform's choice. The error is non-nil only for
// ErrInvalidArgument.
func (l *Launcher) Launch(ctx context.Context, req model.LaunchRequest) (res model.LaunchResult, err error) {
	if req.Locator == "" {
		return model.LaunchResult{Outcome: model.OutcomeFailed}, fmt.Errorf("%w: locator is required", ErrInvalidArgument)
	}

	defer func() {
		if r := recover(); r != nil {
			res, err = l.fail(req, fmt.Errorf("launch panic: %v", r)), nil
		}
	}()

	intent := l.Intent(req)
	ok, err := l.handlers.Resolve(ctx, intent)
	if err != nil {
		return l.fail(req, err), nil
	}

	if ok {
		if err := l.handlers.Start(ctx, intent); err != nil {
			return l.fail(req, err), nil
		}
		l.log.Info().Str("pkg", l.pkg).Str("locator", req.Locator).Msg("Launched player")
		return model.LaunchResult{Outcome: model.OutcomeTarget}, nil
	}

	l.log.Debug().Str("pkg", l.pkg).Msg("Player is not available, using the platform default")
	if err := l.handlers.Start(ctx, intent.Unconstrained()); err != nil {
		return l.fail(req, err), nil
	}
	l.log.Info().Str("locator", req.Locator).Msg("Launched default handler")
	return model.LaunchResult{Outcome: model.OutcomeFallback}, nil
}

func (l *Launcher) fail(req model.LaunchRequest, err error) model.LaunchResult {
	l.log.Error().Err(err).Str("locator", req.Locator).Msg("Launch failed")
	return model.LaunchResult{Outcome: model.OutcomeFailed, Err: err}
}
