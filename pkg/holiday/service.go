package holiday

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ForYear(ctx context.Context, year int) ([]Holiday, error) {
	return s.repo.ForYear(ctx, year)
}

func (s *Service) Store(ctx context.Context, holiday Holiday) error {
	return s.repo.Store(ctx, holiday)
}

func (s *Service) Delete(ctx context.Context, day time.Time) (bool, error) {
	return s.repo.Delete(ctx, day)
}
