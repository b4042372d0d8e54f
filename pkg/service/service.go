package service

import (
	"context"
	"fmt"
)

// Service defines a long-running part of the app with a managed lifecycle.
type Service interface {
	Run()
	Shutdown(ctx context.Context) error
}

// Group is a container for managing a bunch of services.
type Group struct {
	list []Service
}

func (g *Group) Add(services ...Service) { g.list = append(g.list, services...) }

// Start starts each service in the group.
func (g *Group) Start() {
	for _, s := range g.list {
		s.Run()
	}
}

// Shutdown terminates a group of services in reverse registration order.
func (g *Group) Shutdown(ctx context.Context) (err error) {
	var errs []error
	for i := len(g.list) - 1; i >= 0; i-- {
		s := g.list[i]
		if err := s.Shutdown(ctx); err != nil && err != context.Canceled {
			errs = append(errs, fmt.Errorf("failed to stop [%v] because of %v", s, err))
		}
	}
	if len(errs) > 0 {
		err = fmt.Errorf("%s", errs)
	}
	return
}
