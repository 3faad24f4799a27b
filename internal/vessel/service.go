package vessel

import (
	"context"
	"strings"
)

// Service exposes the vessel directory. Vessels are never created through it.
type Service interface {
	FindByIMO(ctx context.Context, imo string) (*Vessel, error)
	FindByName(ctx context.Context, name string) ([]*Vessel, error)
	GetByID(ctx context.Context, id string) (*Vessel, error)
	List(ctx context.Context, q ListQuery) ([]*Vessel, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) FindByIMO(ctx context.Context, imo string) (*Vessel, error) {
	return s.repo.GetByIMO(ctx, strings.TrimSpace(imo))
}

// FindByName returns every vessel whose name matches exactly.
func (s *service) FindByName(ctx context.Context, name string) ([]*Vessel, error) {
	return s.repo.ListByName(ctx, name)
}

func (s *service) GetByID(ctx context.Context, id string) (*Vessel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, q ListQuery) ([]*Vessel, int, error) {
	return s.repo.List(ctx, q)
}
