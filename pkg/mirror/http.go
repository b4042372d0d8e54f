package mirror

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/sidecast/sidecast/pkg/config"
	"github.com/sidecast/sidecast/pkg/logger"
	"github.com/sidecast/sidecast/pkg/network/httpx"
	"github.com/sidecast/sidecast/pkg/network/websocket"
	"github.com/sidecast/sidecast/web"
)

func NewHTTPServer(conf config.Config, app *App, log *logger.Logger) (*httpx.Server, error) {
	return httpx.NewServer(
		conf.HTTP.Address,
		func(*httpx.Server) httpx.Handler {
			h := http.NewServeMux()
			h.Handle("/", index(log))
			h.HandleFunc("/ws", app.handleViewer)
			h.HandleFunc("/api/status", app.handleStatus)
			return h
		},
		httpx.WithServerConfig(conf.HTTP),
		httpx.WithLogger(log),
		httpx.WithPortRoll(true),
	)
}

func index(log *logger.Logger) httpx.Handler {
	page, err := web.Index()
	if err != nil {
		log.Fatal().Err(err).Msg("broken viewer page")
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
}

// handleViewer upgrades the request and feeds the browser frames for
// as long as it stays connected.
func (a *App) handleViewer(w httpx.ResponseWriter, r *httpx.Request) {
	conn, err := websocket.Connect(w, r)
	if err != nil {
		a.log.Error().Err(err).Msg("viewer upgrade failed")
		return
	}
	session := NewSession(conn, a.log)
	defer session.Disconnect()

	prod, err := a.source.Acquire()
	if err != nil {
		session.Log().Error().Err(err).Msg("capture unavailable")
		return
	}
	defer a.source.Release()

	a.sessions.Add(session)
	defer a.sessions.Remove(session)

	session.Log().Info().Msgf("viewer %v connected", r.RemoteAddr)
	defer session.Log().Info().Msgf("viewer %v disconnected", r.RemoteAddr)

	session.Stream(r.Context(), prod, time.Second/time.Duration(a.conf.Capture.Fps))
}

type status struct {
	Version string  `json:"version"`
	Uptime  int64   `json:"uptimeSeconds"`
	Clients int     `json:"clients"`
	Viewers int     `json:"viewers"`
	Quality int     `json:"quality"`
	Backend string  `json:"backend"`
	Region  string  `json:"region"`
	Fps     int     `json:"fps"`
	Scale   float64 `json:"scale"`
}

func (a *App) handleStatus(w httpx.ResponseWriter, _ *httpx.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(status{
		Version: Version,
		Uptime:  int64(time.Since(a.started).Seconds()),
		Clients: a.source.Clients(),
		Viewers: a.sessions.Len(),
		Quality: a.source.Quality(a.conf.Encoder.Quality),
		Backend: a.source.Backend(a.conf.Capture.Backend),
		Region:  a.region.String(),
		Fps:     a.conf.Capture.Fps,
		Scale:   a.conf.Capture.Scale,
	})
	if err != nil {
		a.log.Error().Err(err).Msg("status write failed")
	}
}
