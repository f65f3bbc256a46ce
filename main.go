package main

import (
	"context"
	"errors"
	"os"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/pflag"

	"github.com/ytget/player-bridge/internal/bridge"
	"github.com/ytget/player-bridge/internal/config"
	"github.com/ytget/player-bridge/internal/logger"
	"github.com/ytget/player-bridge/internal/platform"
)

// Version is set during build via -ldflags "-X main.Version=X.Y.Z"
var Version = "dev"

const (
	AppID   = "com.ytget.player_bridge"
	AppName = "player-bridge"

	shutdownTimeout = 5 * time.Second
)

func main() {
	conf, err := config.ParseFlags(AppName, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Default().Fatal().Err(err).Msg("config")
	}

	log := logger.NewConsole(conf.Debug, "b", false)
	log.Info().Msgf("%s version %s", AppName, Version)
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}

	// the fyne app opens fallback URLs and, on Android, owns the main loop
	var a fyne.App
	var opener platform.URLOpener
	if conf.Player.Opener == config.OpenerFyne || platform.IsAndroid() {
		a = app.NewWithID(AppID)
		opener = a
	} else {
		opener = platform.NewSystemOpener(runtime.GOOS, platform.ExecRunner{})
	}

	s, err := bridge.NewService(conf, nil, opener, log)
	if err != nil {
		log.Fatal().Err(err).Msg("bridge")
	}
	s.Start()

	done := platform.ExpectTermination()
	if a != nil && platform.IsAndroid() {
		go func() {
			<-done
			a.Quit()
		}()
		a.Run()
	} else {
		<-done
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("service shutdown errors")
	}
}
