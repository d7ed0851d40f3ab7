package health

import (
	"context"
	"errors"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase describes readiness verification. Ready always returns
// the per-component status; err is non-nil when any component failed.
type ReadinessUseCase interface {
	Ready(ctx context.Context) (map[string]string, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) (map[string]string, error) {
	status := make(map[string]string, len(s.checkers))
	var errs []error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			status[ch.Name()] = "down"
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			continue
		}
		status[ch.Name()] = "up"
	}
	return status, errors.Join(errs...)
}
