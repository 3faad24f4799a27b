package location

import (
	"context"
	"strings"
)

type Service interface {
	// Resolve returns the canonical id for the descriptor. It is idempotent and
	// creates the location the first time it is seen.
	Resolve(ctx context.Context, d Descriptor) (string, error)
	GetByID(ctx context.Context, id string) (*Location, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Resolve(ctx context.Context, d Descriptor) (string, error) {
	d = Descriptor{
		LocationName:   strings.TrimSpace(d.LocationName),
		UNLocationCode: strings.ToUpper(strings.TrimSpace(d.UNLocationCode)),
		Address:        strings.TrimSpace(d.Address),
		FacilityCode:   strings.ToUpper(strings.TrimSpace(d.FacilityCode)),
	}
	if d.IsEmpty() {
		return "", ErrEmptyLocation
	}
	if d.UNLocationCode != "" && len(d.UNLocationCode) != 5 {
		return "", ErrInvalidUNLCode
	}
	return s.repo.Upsert(ctx, d)
}

func (s *service) GetByID(ctx context.Context, id string) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}
