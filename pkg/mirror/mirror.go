// Package mirror wires screen capture, encoding, and delivery into
// one app serving browser viewers and companion clients.
package mirror

import (
	"context"
	"net"
	"time"

	"github.com/sidecast/sidecast/pkg/capture"
	"github.com/sidecast/sidecast/pkg/com"
	"github.com/sidecast/sidecast/pkg/config"
	"github.com/sidecast/sidecast/pkg/logger"
	"github.com/sidecast/sidecast/pkg/monitoring"
	"github.com/sidecast/sidecast/pkg/network/httpx"
	"github.com/sidecast/sidecast/pkg/service"
)

// Version is stamped at build time.
var Version = "dev"

// App owns the shared capture source and the network services that
// feed clients from it.
type App struct {
	conf     config.Config
	region   capture.Region
	source   *Source
	sessions com.NetMap[com.Uid, *Session]
	services service.Group
	http     *httpx.Server
	started  time.Time
	log      *logger.Logger
}

func New(conf config.Config, log *logger.Logger) (*App, error) {
	region, err := capture.ResolveRegion(conf.Capture.Monitor, log)
	if err != nil {
		return nil, err
	}
	app := &App{
		conf:     conf,
		region:   region,
		sessions: com.NewNetMap[com.Uid, *Session](),
		started:  time.Now(),
		log:      log,
	}
	app.source = NewSource(func() (*Producer, error) {
		return NewProducer(conf, region, log)
	}, log)

	h, err := NewHTTPServer(conf, app, log)
	if err != nil {
		return nil, err
	}
	app.http = h
	app.services.Add(h)

	if !conf.TCP.Disabled {
		t, err := NewTCPServer(conf.TCP, app.source, conf.Capture.Fps, log)
		if err != nil {
			return nil, err
		}
		app.services.Add(t)
	}
	if conf.Monitoring.IsEnabled() {
		m, err := monitoring.New(conf.Monitoring, log)
		if err != nil {
			return nil, err
		}
		app.services.Add(m)
	}
	return app, nil
}

// Start brings every service up and prints where to point a viewer.
func (a *App) Start() {
	a.services.Start()
	a.log.Info().Msgf("screen %v at %v fps, scale %.2f", a.region, a.conf.Capture.Fps, a.conf.Capture.Scale)
	proto, port := a.http.GetProtocol(), a.http.GetPort()
	if ip := lanIP(); ip != "" {
		a.log.Info().Msgf("viewer at %v://%v:%v", proto, ip, port)
	}
	a.log.Info().Msgf("viewer at %v://localhost:%v", proto, port)
	if !a.conf.TCP.Disabled {
		a.log.Info().Msgf("usb clients: adb reverse tcp:%v tcp:%v", a.conf.TCP.Port, a.conf.TCP.Port)
	}
}

// Shutdown disconnects every viewer and stops the services.
func (a *App) Shutdown(ctx context.Context) error {
	a.sessions.ForEach(func(s *Session) { s.Disconnect() })
	return a.services.Shutdown(ctx)
}

// lanIP finds the address a viewer on the local network can reach.
func lanIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		if n, ok := addr.(*net.IPNet); ok && !n.IP.IsLoopback() {
			if ip := n.IP.To4(); ip != nil {
				return ip.String()
			}
		}
	}
	return ""
}
