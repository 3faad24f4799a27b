package booking

import (
	"context"

	"github.com/nekogravitycat/freight-booking-backend/internal/confirmation"
	"github.com/nekogravitycat/freight-booking-backend/internal/event"
	"github.com/nekogravitycat/freight-booking-backend/internal/location"
	"github.com/nekogravitycat/freight-booking-backend/internal/vessel"
	"github.com/nekogravitycat/freight-booking-backend/internal/voyage"
)

// VesselDirectory is the read-only vessel registry. Lookups by IMO and id
// return vessel.ErrNotFound when nothing matches.
type VesselDirectory interface {
	FindByIMO(ctx context.Context, imo string) (*vessel.Vessel, error)
	FindByName(ctx context.Context, name string) ([]*vessel.Vessel, error)
	GetByID(ctx context.Context, id string) (*vessel.Vessel, error)
}

// VoyageDirectory is the read-only voyage registry.
type VoyageDirectory interface {
	FindByNumber(ctx context.Context, number string) (*voyage.Voyage, error)
	GetByID(ctx context.Context, id string) (*voyage.Voyage, error)
}

// LocationResolver maps descriptive location fields to a canonical id, creating it when new.
type LocationResolver interface {
	Resolve(ctx context.Context, d location.Descriptor) (string, error)
	GetByID(ctx context.Context, id string) (*location.Location, error)
}

// EventSink receives lifecycle events. Called inside the write transaction.
type EventSink interface {
	Notify(ctx context.Context, e event.Event) error
}

type ConfirmationReader interface {
	GetByBookingID(ctx context.Context, bookingID string) (*confirmation.Confirmation, error)
}
