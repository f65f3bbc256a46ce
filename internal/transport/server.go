package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/ytget/player-bridge/internal/logger"
)

type Server struct {
	http.Server

	listener net.Listener
	log      *logger.Logger
}

type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Logger       *logger.Logger
}

type Option func(*Options)

func WithTimeouts(read, write time.Duration) Option {
	return func(o *Options) {
		if read > 0 {
			o.ReadTimeout = read
		}
		if write > 0 {
			o.WriteTimeout = write
		}
	}
}

func WithLogger(log *logger.Logger) Option { return func(o *Options) { o.Logger = log } }

// NewServer binds the address right away so that port errors show up
// before Run and ":0" addresses are resolved.
func NewServer(address string, handler http.Handler, options ...Option) (*Server, error) {
	opts := Options{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Server: http.Server{
			Addr:         listener.Addr().String(),
			Handler:      handler,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
		listener: listener,
		log:      opts.Logger,
	}
	if c, ok := handler.(interface{ Close() }); ok {
		// hijacked websocket connections are not closed by Shutdown
		server.RegisterOnShutdown(c.Close)
	}
	server.log.Info().Msgf("http %v (%v)", server.Addr, address)
	return server, nil
}

// Run serves in a goroutine.
func (s *Server) Run() { go s.run() }

func (s *Server) run() {
	s.log.Debug().Msgf("Starting server on %s", s.Addr)
	err := s.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		s.log.Debug().Msg("Server was closed")
		return
	}
	s.log.Error().Err(err).Msg("Server failed")
}

// Shutdown stops the server, the listener is closed even if Run was never called.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Server.Shutdown(ctx)
	if cerr := s.listener.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
		err = cerr
	}
	return err
}

// URL returns the base address of the server with the given scheme.
func (s *Server) URL(scheme string) string { return scheme + "://" + s.Addr }
