package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nekogravitycat/freight-booking-backend/internal/confirmation"
	"github.com/nekogravitycat/freight-booking-backend/internal/db"
	"github.com/nekogravitycat/freight-booking-backend/internal/event"
	"github.com/nekogravitycat/freight-booking-backend/internal/location"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
)

type Service interface {
	Create(ctx context.Context, req Request) (*Booking, error)
	Update(ctx context.Context, reference string, req Request) (*Booking, error)
	Cancel(ctx context.Context, reference string, req CancelRequest) (*Booking, error)
	Get(ctx context.Context, reference string) (*Aggregate, error)
	GetConfirmation(ctx context.Context, reference string) (*confirmation.Confirmation, error)
	List(ctx context.Context, q ListQuery) ([]*Booking, int, error)
	History(ctx context.Context, reference string) ([]*Booking, error)
}

// Deps are the collaborators of the booking service. Now defaults to time.Now.
type Deps struct {
	Repo          Repository
	Assembler     *Assembler
	Tx            db.TxManager
	Vessels       VesselDirectory
	Voyages       VoyageDirectory
	Locations     LocationResolver
	Events        EventSink
	Confirmations ConfirmationReader
	Logger        *zap.Logger
	Now           func() time.Time
}

type service struct {
	repo          Repository
	assembler     *Assembler
	tx            db.TxManager
	vessels       VesselDirectory
	voyages       VoyageDirectory
	locations     LocationResolver
	events        EventSink
	confirmations ConfirmationReader
	log           *zap.Logger
	now           func() time.Time
}

func NewService(d Deps) Service {
	s := &service{
		repo:          d.Repo,
		assembler:     d.Assembler,
		tx:            d.Tx,
		vessels:       d.Vessels,
		voyages:       d.Voyages,
		locations:     d.Locations,
		events:        d.Events,
		confirmations: d.Confirmations,
		log:           d.Logger,
		now:           d.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Create(ctx context.Context, req Request) (*Booking, error) {
	req = req.normalized()
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	refs, err := s.resolveTransport(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	b := &Booking{
		Status:      StatusReceived,
		RequestedAt: now,
		UpdatedAt:   now,
		Fields:      req.Fields,
	}
	refs.apply(b)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.writeRevision(ctx, b, req, event.KindBookingCreated)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("reference", b.Reference),
		zap.String("booking_id", b.ID),
	)
	return b, nil
}

// Update replaces the active revision of reference. An unknown reference is
// reported before the payload is looked at.
func (s *service) Update(ctx context.Context, reference string, req Request) (*Booking, error) {
	req = req.normalized()
	var b *Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		active, err := s.activeRevision(ctx, reference)
		if err != nil {
			return err
		}
		if err := ValidateRequest(req); err != nil {
			return err
		}
		refs, err := s.resolveTransport(ctx, req)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		ok, err := s.repo.Supersede(ctx, active.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrConcurrentUpdate
		}

		b = &Booking{
			Reference:   active.Reference,
			Status:      active.Status,
			RequestedAt: active.RequestedAt,
			UpdatedAt:   now,
			Fields:      req.Fields,
		}
		refs.apply(b)
		return s.writeRevision(ctx, b, req, event.KindBookingUpdated)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking updated",
		zap.String("reference", b.Reference),
		zap.String("booking_id", b.ID),
	)
	return b, nil
}

// writeRevision stores b with its locations and children and records the event.
// It must run inside a transaction.
func (s *service) writeRevision(ctx context.Context, b *Booking, req Request, kind event.Kind) error {
	var err error
	if b.InvoicePayableAtID, err = s.resolveLocation(ctx, req.InvoicePayableAt); err != nil {
		return err
	}
	if b.PlaceOfIssueID, err = s.resolveLocation(ctx, req.PlaceOfIssue); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		return err
	}
	if b.ID == "" {
		return apperror.Internal(nil, "booking was stored without an id")
	}

	if err := s.assembler.CreateChildren(ctx, b.ID, req.Children); err != nil {
		return err
	}

	return s.notify(ctx, b, kind, nil)
}

func (s *service) resolveLocation(ctx context.Context, d *location.Descriptor) (*string, error) {
	if d == nil {
		return nil, nil
	}
	id, err := s.locations.Resolve(ctx, *d)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *service) Cancel(ctx context.Context, reference string, req CancelRequest) (*Booking, error) {
	var b *Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		active, err := s.activeRevision(ctx, reference)
		if err != nil {
			return err
		}
		if !active.Status.Cancellable() {
			return ErrCannotCancel
		}

		now := s.now().UTC()
		ok, err := s.repo.UpdateStatus(ctx, reference, active.Status, StatusCancelled, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancellationFailed
		}

		active.Status = StatusCancelled
		active.UpdatedAt = now
		b = active

		var reason *string
		if req.Reason != "" {
			reason = &req.Reason
		}
		return s.notify(ctx, b, event.KindBookingCancelled, reason)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking cancelled",
		zap.String("reference", b.Reference),
		zap.String("reason", req.Reason),
	)
	return b, nil
}

func (s *service) notify(ctx context.Context, b *Booking, kind event.Kind, reason *string) error {
	err := s.events.Notify(ctx, event.Event{
		BookingID:  b.ID,
		Reference:  b.Reference,
		Kind:       kind,
		Status:     string(b.Status),
		Reason:     reason,
		OccurredAt: b.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("record %s event: %w", kind, err)
	}
	return nil
}

// activeRevision loads the single non-superseded revision of reference.
func (s *service) activeRevision(ctx context.Context, reference string) (*Booking, error) {
	revisions, err := s.repo.ListActive(ctx, reference)
	if err != nil {
		return nil, err
	}
	switch len(revisions) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return revisions[0], nil
	default:
		s.log.Error("multiple active booking revisions",
			zap.String("reference", reference),
			zap.Int("count", len(revisions)),
		)
		return nil, apperror.Internal(
			fmt.Errorf("%d active revisions for %s", len(revisions), reference),
			"booking has more than one active revision",
		)
	}
}

// Get loads the active revision with its children and refreshes the display
// fields from the directories.
func (s *service) Get(ctx context.Context, reference string) (*Aggregate, error) {
	b, err := s.activeRevision(ctx, reference)
	if err != nil {
		return nil, err
	}

	agg := &Aggregate{Booking: b}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		children, err := s.assembler.FetchChildren(gctx, b.ID)
		if err != nil {
			return err
		}
		agg.Children = *children
		return s.describeLocations(gctx, agg.Locations)
	})
	if b.VesselID != nil {
		g.Go(func() error {
			v, err := s.vessels.GetByID(gctx, *b.VesselID)
			if err != nil {
				return fmt.Errorf("resolve vessel: %w", err)
			}
			b.VesselName, b.VesselIMONumber = v.Name, v.IMONumber
			return nil
		})
	}
	if b.VoyageID != nil {
		g.Go(func() error {
			vy, err := s.voyages.GetByID(gctx, *b.VoyageID)
			if err != nil {
				return fmt.Errorf("resolve voyage: %w", err)
			}
			b.VoyageNumber = vy.CarrierVoyageNumber
			return nil
		})
	}
	if b.InvoicePayableAtID != nil {
		g.Go(func() (err error) {
			agg.InvoicePayableAt, err = s.describeLocation(gctx, *b.InvoicePayableAtID)
			return err
		})
	}
	if b.PlaceOfIssueID != nil {
		g.Go(func() (err error) {
			agg.PlaceOfIssue, err = s.describeLocation(gctx, *b.PlaceOfIssueID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return agg, nil
}

func (s *service) describeLocation(ctx context.Context, id string) (*location.Descriptor, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve location %s: %w", id, err)
	}
	return &loc.Descriptor, nil
}

func (s *service) describeLocations(ctx context.Context, locs []ShipmentLocation) error {
	for i := range locs {
		d, err := s.describeLocation(ctx, locs[i].LocationID)
		if err != nil {
			return err
		}
		locs[i].Location = *d
	}
	return nil
}

func (s *service) GetConfirmation(ctx context.Context, reference string) (*confirmation.Confirmation, error) {
	b, err := s.activeRevision(ctx, reference)
	if err != nil {
		return nil, err
	}
	return s.confirmations.GetByBookingID(ctx, b.ID)
}

func (s *service) List(ctx context.Context, q ListQuery) ([]*Booking, int, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, apperror.InvalidInput("unknown bookingStatus %q", q.Status)
	}
	return s.repo.List(ctx, q)
}

func (s *service) History(ctx context.Context, reference string) ([]*Booking, error) {
	revisions, err := s.repo.History(ctx, reference)
	if err != nil {
		return nil, err
	}
	if len(revisions) == 0 {
		return nil, ErrNotFound
	}
	return revisions, nil
}
