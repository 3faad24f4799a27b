package voyage

import (
	"time"

	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.NotFound("voyage not found")
)

// Voyage is a carrier voyage. Voyage numbers are not guaranteed to be unique.
type Voyage struct {
	ID                       string
	CarrierVoyageNumber      string
	UniversalVoyageReference string
	ServiceCode              string
	CreatedAt                time.Time
}
