package voyage

import (
	"context"
	"strings"
)

type Service interface {
	// FindByNumber accepts the first match when the directory holds duplicates.
	FindByNumber(ctx context.Context, number string) (*Voyage, error)
	GetByID(ctx context.Context, id string) (*Voyage, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) FindByNumber(ctx context.Context, number string) (*Voyage, error) {
	return s.repo.FirstByNumber(ctx, strings.TrimSpace(number))
}

func (s *service) GetByID(ctx context.Context, id string) (*Voyage, error) {
	return s.repo.GetByID(ctx, id)
}
