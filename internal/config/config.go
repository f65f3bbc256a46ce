package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"
	"github.com/ytget/player-bridge/internal/launcher"
	"github.com/ytget/player-bridge/internal/memory"
	"github.com/ytget/player-bridge/internal/platform"
)

// EnvPrefix is prepended to environment overrides, e.g. PLAYER_BRIDGE_SERVER_ADDRESS.
const EnvPrefix = "PLAYER_BRIDGE"

// FileName is the configuration file looked up in the config dirs.
const FileName = "config.yaml"

// Opener names
const (
	OpenerFyne   = "fyne"
	OpenerSystem = "system"
)

// Default channel names
const (
	DefaultPlayerChannel     = "com.ytget.player_bridge/vlc"
	DefaultDeviceInfoChannel = "com.ytget.player_bridge/device_info"
)

type Config struct {
	Debug      bool
	Server     Server
	Player     Player
	Memory     Memory
	Channels   Channels
	Monitoring Monitoring
	Lock       Lock
}

type Server struct {
	Address      string        `fig:"address" default:"127.0.0.1:9847"`
	ReadTimeout  time.Duration `fig:"read_timeout" default:"10s"`
	WriteTimeout time.Duration `fig:"write_timeout" default:"10s"`
}

type Player struct {
	// Package is the application id of the targeted player.
	Package  string `fig:"package" default:"org.videolan.vlc"`
	MimeType string `fig:"mime_type" default:"video/*"`
	// Binaries overrides the desktop executables of Package.
	Binaries []string `fig:"binaries"`
	// Opener opens unconstrained requests on desktops: fyne or system.
	Opener string `fig:"opener" default:"fyne"`
}

type Memory struct {
	Source     string `fig:"source" default:"gopsutil"`
	FallbackMB int    `fig:"fallback_mb" default:"2048"`
}

type Channels struct {
	Player     string `fig:"player" default:"com.ytget.player_bridge/vlc"`
	DeviceInfo string `fig:"device_info" default:"com.ytget.player_bridge/device_info"`
}

type Monitoring struct {
	MetricEnabled bool   `fig:"metric_enabled"`
	URLPrefix     string `fig:"url_prefix"`
}

type Lock struct {
	// Path of the single-instance lock file, empty means the temp dir.
	Path string `fig:"path"`
	// Disabled allows several bridges, e.g. on different ports.
	Disabled bool `fig:"disabled"`
}

// Load reads the configuration file and the environment.
// The path param specifies a custom path to the configuration file;
// without it the file is looked up in ., configs and ~/.player-bridge.
// A missing file is not an error, defaults and environment still apply.
func Load(path string) (*Config, error) {
	conf := &Config{}
	file, dirs := FileName, []string{".", "configs"}
	if path != "" {
		file, dirs = filepath.Base(path), []string{filepath.Dir(path)}
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".player-bridge"))
	}

	err := fig.Load(conf, fig.File(file), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) && path == "" {
		err = fig.Load(conf, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	if err != nil {
		return nil, err
	}
	return conf, nil
}

// AddFlags binds the command line flags to c; current values are the defaults.
func (c *Config) AddFlags(fs *pflag.FlagSet) *Config {
	fs.BoolVarP(&c.Debug, "debug", "d", c.Debug, "Enable debug logging")
	fs.StringVarP(&c.Server.Address, "address", "a", c.Server.Address, "Address of the channel server")
	fs.StringVar(&c.Player.Package, "player", c.Player.Package, "Application id of the player to launch")
	fs.StringVar(&c.Player.MimeType, "mime", c.Player.MimeType, "Media type of launched locators")
	fs.StringSliceVar(&c.Player.Binaries, "player.bin", c.Player.Binaries, "Desktop executables of the player")
	fs.StringVar(&c.Player.Opener, "opener", c.Player.Opener, "Desktop opener for the fallback path (fyne|system)")
	fs.StringVar(&c.Memory.Source, "memory.source", c.Memory.Source, "Memory source (gopsutil|runtime)")
	fs.IntVar(&c.Memory.FallbackMB, "memory.fallback", c.Memory.FallbackMB, "Megabytes reported when the memory query fails")
	fs.StringVar(&c.Channels.Player, "channel.player", c.Channels.Player, "Name of the player channel")
	fs.StringVar(&c.Channels.DeviceInfo, "channel.device", c.Channels.DeviceInfo, "Name of the device info channel")
	fs.BoolVarP(&c.Monitoring.MetricEnabled, "monitoring.metric", "m", c.Monitoring.MetricEnabled, "Enable prometheus metric for server")
	fs.StringVar(&c.Lock.Path, "lock", c.Lock.Path, "Path of the single-instance lock file")
	fs.BoolVar(&c.Lock.Disabled, "no-lock", c.Lock.Disabled, "Allow several bridge instances")
	return c
}

// ParseFlags loads the configuration named by --config (or the default
// locations) and applies the rest of the command line over it.
func ParseFlags(name string, args []string) (*Config, error) {
	pre := pflag.NewFlagSet(name, pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	path := pre.StringP("config", "c", "", "")
	// -h is not known yet, the second pass reports it
	_ = pre.Parse(args)

	conf, err := Load(*path)
	if err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", *path, "Path to the configuration file")
	conf.AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return conf, nil
}

// Players returns the desktop executables override, nil when not set.
func (c *Config) Players() map[string][]string {
	if len(c.Player.Binaries) == 0 {
		return nil
	}
	return map[string][]string{c.Player.Package: c.Player.Binaries}
}

// LauncherOptions returns the launcher settings.
func (c *Config) LauncherOptions() []launcher.Option {
	return []launcher.Option{launcher.WithPackage(c.Player.Package), launcher.WithMimeType(c.Player.MimeType)}
}

// MemoryFallbackMB returns the fail-open memory value.
func (c *Config) MemoryFallbackMB() int {
	if c.Memory.FallbackMB <= 0 {
		return memory.DefaultFallbackMB
	}
	return c.Memory.FallbackMB
}

// Validate checks values fig cannot check by itself.
func (c *Config) Validate() error {
	switch c.Player.Opener {
	case OpenerFyne, OpenerSystem:
	default:
		return errors.New("player.opener must be fyne or system")
	}
	if _, err := platform.NewMemoryInfo(c.Memory.Source); err != nil {
		return err
	}
	if c.Channels.Player == "" || c.Channels.DeviceInfo == "" {
		return errors.New("channel names must not be empty")
	}
	if c.Channels.Player == c.Channels.DeviceInfo {
		return errors.New("player and device info channels must differ")
	}
	return nil
}
