package bridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/ytget/player-bridge/internal/channel"
	"github.com/ytget/player-bridge/internal/config"
	"github.com/ytget/player-bridge/internal/launcher"
	"github.com/ytget/player-bridge/internal/logger"
	"github.com/ytget/player-bridge/internal/memory"
	"github.com/ytget/player-bridge/internal/monitoring"
	"github.com/ytget/player-bridge/internal/platform"
	"github.com/ytget/player-bridge/internal/transport"
)

// Service runs a bridge behind the channel server.
type Service struct {
	Registry *channel.Registry
	server   *transport.Server
	lock     *platform.InstanceLock
	log      *logger.Logger
}

// NewService wires the bridge from the configuration. Handlers may be nil
// to use the ones of the current platform with the given opener.
func NewService(conf *config.Config, handlers platform.Handlers, opener platform.URLOpener, log *logger.Logger) (*Service, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	s := &Service{log: log}
	if !conf.Lock.Disabled {
		lock, err := platform.NewInstanceLock(conf.Lock.Path)
		if err != nil {
			return nil, err
		}
		if err := lock.TryLock(); err != nil {
			return nil, err
		}
		s.lock = lock
	}

	if handlers == nil {
		handlers = platform.NewHandlers(opener, conf.Players())
	}
	source, err := platform.NewMemoryInfo(conf.Memory.Source)
	if err != nil {
		s.unlock()
		return nil, err
	}

	metrics := monitoring.New()
	s.Registry = channel.NewRegistry(log)
	s.Registry.OnReply(func(ch, method string, status channel.Status) {
		metrics.ObserveCall(ch, method, string(status))
	})
	New(
		Channels{Player: conf.Channels.Player, DeviceInfo: conf.Channels.DeviceInfo},
		launcher.New(handlers, log, conf.LauncherOptions()...),
		memory.NewReporter(source, conf.MemoryFallbackMB(), log),
		metrics,
		log,
	).Register(s.Registry)

	var metricsHandler http.Handler
	if conf.Monitoring.MetricEnabled {
		metricsHandler = metrics.Handler()
	}
	s.server, err = transport.NewServer(
		conf.Server.Address,
		transport.NewHandler(s.Registry, metricsHandler, conf.Monitoring.URLPrefix, log),
		transport.WithTimeouts(conf.Server.ReadTimeout, conf.Server.WriteTimeout),
		transport.WithLogger(log),
	)
	if err != nil {
		s.unlock()
		return nil, err
	}
	return s, nil
}

func (s *Service) Start() {
	s.log.Info().Strs("channels", s.Registry.Channels()).Msgf("Serving on %s", s.server.URL("http"))
	s.server.Run()
}

// Addr is the resolved listen address.
func (s *Service) Addr() string { return s.server.Addr }

func (s *Service) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	return errors.Join(err, s.unlock())
}

func (s *Service) unlock() error {
	if s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}
