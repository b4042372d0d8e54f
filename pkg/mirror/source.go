package mirror

import (
	"sync"

	"github.com/sidecast/sidecast/pkg/logger"
)

// BuildFunc creates the capture pipeline for the first client.
type BuildFunc func() (*Producer, error)

// Source shares one capture pipeline between every connected client.
//
// The screen is one physical resource, so the producer is created
// lazily when the first session acquires it, handed out to everyone
// who asks while at least one session holds it, and torn down when
// the last session lets go. A later acquire starts a fresh pipeline.
type Source struct {
	mu    sync.Mutex
	build BuildFunc
	prod  *Producer
	count int
	log   *logger.Logger
}

func NewSource(build BuildFunc, log *logger.Logger) *Source {
	return &Source{build: build, log: log}
}

// Acquire returns the shared producer and takes a reference on it.
func (s *Source) Acquire() (*Producer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prod == nil {
		prod, err := s.build()
		if err != nil {
			return nil, err
		}
		s.prod = prod
		s.log.Info().Msgf("capture started (%v)", prod.Backend())
	}
	s.count++
	return s.prod, nil
}

// Release drops one reference, stopping the pipeline with the last one.
func (s *Source) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count == 0 {
		s.log.Error().Msg("capture release without a matching acquire")
		return
	}
	s.count--
	if s.count == 0 {
		s.prod.Close()
		s.prod = nil
		s.log.Info().Msg("capture stopped, no clients left")
	}
}

// Clients reports how many sessions hold the source right now.
func (s *Source) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Quality reports the current encode quality or the fallback value
// when no pipeline is running.
func (s *Source) Quality(fallback int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prod == nil {
		return fallback
	}
	return s.prod.Quality()
}

// Backend names the running capture strategy or the fallback
// preference when no pipeline is running.
func (s *Source) Backend(fallback string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prod == nil {
		return fallback
	}
	return s.prod.Backend()
}
