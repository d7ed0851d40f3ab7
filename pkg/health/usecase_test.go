package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	name string
	err  error
}

func (c stubChecker) Name() string                { return c.name }
func (c stubChecker) Check(context.Context) error { return c.err }

func TestReady(t *testing.T) {
	down := errors.New("connection refused")
	svc := NewService(stubChecker{name: "postgres", err: down}, stubChecker{name: "memory"})

	status, err := svc.Ready(context.Background())

	assert.ErrorIs(t, err, down)
	assert.ErrorContains(t, err, "postgres")
	assert.Equal(t, map[string]string{"postgres": "down", "memory": "up"}, status)
}

func TestReady_AllUp(t *testing.T) {
	status, err := NewService(stubChecker{name: "memory"}).Ready(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "up", status["memory"])
}
