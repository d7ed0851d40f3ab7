package analytics

import (
	"context"
	"time"

	"github.com/artem13815/taskverse/pkg/access"
	"github.com/artem13815/taskverse/pkg/auth"
)

// RecentWindow is how far back "recent" tasks are counted.
const RecentWindow = 7 * 24 * time.Hour

// UseCase serves the admin dashboard figures.
type UseCase interface {
	Get(ctx context.Context, actor auth.Identity) (Report, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Get(ctx context.Context, actor auth.Identity) (Report, error) {
	if err := access.Check(actor, access.ReadAnalytics, nil); err != nil {
		return Report{}, err
	}
	now := s.now().UTC()
	rep, err := s.repo.Summary(ctx, now, now.Add(-RecentWindow))
	if err != nil {
		return Report{}, err
	}
	rep.GeneratedAt = now
	return rep, nil
}
