package config

import (
	"os"

	"github.com/spf13/pflag"
)

type Config struct {
	Sidecast   App
	Capture    Capture
	Encoder    Encoder
	HTTP       Server `fig:"http"`
	TCP        TCP    `fig:"tcp"`
	Monitoring Monitoring
}

type App struct {
	Debug    bool
	LockFile string `fig:"lockFile"`
}

type Capture struct {
	// Backend picks the frame acquisition strategy:
	// auto, poll (non-blocking latest-frame), grab (synchronous).
	Backend string `fig:"backend" default:"auto"`
	// Monitor is 1-based, 0 captures the bounds of all displays,
	// -1 picks the last enumerated display.
	Monitor int     `fig:"monitor" default:"-1"`
	Fps     int     `fig:"fps" default:"60"`
	Scale   float64 `fig:"scale" default:"1.0"`
}

type Encoder struct {
	Quality       int  `fig:"quality" default:"80"`
	MinQuality    int  `fig:"minQuality" default:"20"`
	NoAdaptive    bool `fig:"noAdaptive"`
	BandwidthKBps int  `fig:"bandwidthKBps" default:"500000"`
}

func (e *Encoder) AdaptiveEnabled() bool { return !e.NoAdaptive }

type Server struct {
	Address string `fig:"address" default:":8080"`
	Https   bool
	Tls     struct {
		Address   string
		Domain    string
		HttpsKey  string
		HttpsCert string
	}
}

type TCP struct {
	Port     int `fig:"port" default:"5001"`
	Disabled bool
}

type Monitoring struct {
	Port             int    `fig:"port" default:"6601"`
	URLPrefix        string `fig:"urlPrefix"`
	MetricEnabled    bool   `fig:"metricEnabled"`
	ProfilingEnabled bool   `fig:"profilingEnabled"`
}

func (c *Monitoring) IsEnabled() bool { return c.MetricEnabled || c.ProfilingEnabled }

// NewConfig loads the app configuration from the default locations or
// a custom directory set with the SIDECAST_CONF environment variable.
func NewConfig() *Config {
	var conf Config
	if err := LoadConfig(&conf, os.Getenv("SIDECAST_CONF")); err != nil {
		panic(err)
	}
	conf.fixValues()
	return &conf
}

func (c *Config) WithFlags(fs *pflag.FlagSet) *Config {
	fs.IntVar(&c.Capture.Fps, "fps", c.Capture.Fps, "Target frames per second")
	fs.IntVar(&c.Capture.Monitor, "monitor", c.Capture.Monitor, "Monitor to capture (1-based, 0 for all, -1 for auto)")
	fs.Float64Var(&c.Capture.Scale, "scale", c.Capture.Scale, "Resolution scale factor (0.1-1.0)")
	fs.StringVar(&c.Capture.Backend, "backend", c.Capture.Backend, "Capture backend (auto, poll, grab)")
	fs.IntVar(&c.Encoder.Quality, "quality", c.Encoder.Quality, "JPEG quality (1-100)")
	fs.IntVar(&c.Encoder.BandwidthKBps, "bandwidth", c.Encoder.BandwidthKBps, "Bandwidth limit in KB/s")
	fs.BoolVar(&c.Encoder.NoAdaptive, "no-adaptive", c.Encoder.NoAdaptive, "Disable adaptive quality control")
	fs.StringVar(&c.HTTP.Address, "address", c.HTTP.Address, "HTTP server address (host:port)")
	fs.IntVar(&c.TCP.Port, "tcp-port", c.TCP.Port, "Raw TCP stream port")
	fs.BoolVar(&c.TCP.Disabled, "no-tcp", c.TCP.Disabled, "Disable the raw TCP stream server")
	fs.IntVar(&c.Monitoring.Port, "monitoring.port", c.Monitoring.Port, "Monitoring server port")
	fs.BoolVarP(&c.Sidecast.Debug, "verbose", "v", c.Sidecast.Debug, "Verbose logging")
	return c
}

// ParseFlags updates config values from passed runtime flags.
func (c *Config) ParseFlags() {
	c.WithFlags(pflag.CommandLine)
	pflag.Parse()
	c.fixValues()
}

// fixValues clamps configuration values that are hard to validate externally.
func (c *Config) fixValues() {
	c.Encoder.Quality = clamp(c.Encoder.Quality, 1, 100)
	c.Encoder.MinQuality = clamp(c.Encoder.MinQuality, 1, c.Encoder.Quality)
	c.Capture.Scale = clampF(c.Capture.Scale, 0.1, 1.0)
	if c.Capture.Fps < 1 {
		c.Capture.Fps = 1
	}
	if c.Capture.Monitor < -1 {
		c.Capture.Monitor = -1
	}
	if c.Encoder.BandwidthKBps < 1 {
		c.Encoder.BandwidthKBps = 1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
