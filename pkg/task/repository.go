package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/apperr"
)

var ErrNotFound = fmt.Errorf("%w: task", apperr.ErrNotFound)

// Repository is the task store port. GetByID, Update and Delete return
// ErrNotFound when the task does not exist, including when it vanished
// between a read and a write.
type Repository interface {
	Create(ctx context.Context, t Task) error
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	List(ctx context.Context, f Filter, p Page) (ListResult, error)
	Update(ctx context.Context, id uuid.UUID, p Patch) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
