package confirmation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type Service interface {
	// GetByBookingID reads every confirmation collection of a booking revision.
	// Missing collections come back empty.
	GetByBookingID(ctx context.Context, bookingID string) (*Confirmation, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByBookingID(ctx context.Context, bookingID string) (*Confirmation, error) {
	c := &Confirmation{BookingID: bookingID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.CutOffTimes, err = s.repo.ListCutOffTimes(gctx, bookingID)
		return wrap("cut-off times", err)
	})
	g.Go(func() (err error) {
		c.Equipment, err = s.repo.ListEquipment(gctx, bookingID)
		return wrap("confirmed equipment", err)
	})
	g.Go(func() (err error) {
		c.Charges, err = s.repo.ListCharges(gctx, bookingID)
		return wrap("charges", err)
	})
	g.Go(func() (err error) {
		c.Clauses, err = s.repo.ListClauses(gctx, bookingID)
		return wrap("carrier clauses", err)
	})
	g.Go(func() (err error) {
		c.Transports, err = s.repo.ListTransports(gctx, bookingID)
		return wrap("transports", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if c.CutOffTimes == nil {
		c.CutOffTimes = []CutOffTime{}
	}
	if c.Equipment == nil {
		c.Equipment = []Equipment{}
	}
	if c.Charges == nil {
		c.Charges = []Charge{}
	}
	if c.Clauses == nil {
		c.Clauses = []Clause{}
	}
	if c.Transports == nil {
		c.Transports = []Transport{}
	}
	return c, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("fetch %s: %w", what, err)
	}
	return nil
}
