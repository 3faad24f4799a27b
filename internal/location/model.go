package location

import (
	"strings"
	"time"

	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
)

var (
	ErrLocNotFound    = apperror.NotFound("location not found")
	ErrEmptyLocation  = apperror.InvalidInput("location must have a locationName, UNLocationCode, address or facilityCode")
	ErrInvalidUNLCode = apperror.InvalidInput("UNLocationCode must be 5 characters")
)

// Descriptor holds the descriptive fields a client uses to identify a location.
type Descriptor struct {
	LocationName   string
	UNLocationCode string
	Address        string
	FacilityCode   string
}

// IsEmpty reports whether no descriptive field is set.
func (d Descriptor) IsEmpty() bool {
	return d.normalized() == Descriptor{}
}

// NaturalKey identifies equivalent descriptors. Matching is case and whitespace insensitive.
func (d Descriptor) NaturalKey() string {
	n := d.normalized()
	return strings.Join([]string{n.UNLocationCode, n.FacilityCode, n.LocationName, n.Address}, "|")
}

func (d Descriptor) normalized() Descriptor {
	return Descriptor{
		LocationName:   strings.ToLower(strings.Join(strings.Fields(d.LocationName), " ")),
		UNLocationCode: strings.ToUpper(strings.TrimSpace(d.UNLocationCode)),
		Address:        strings.ToLower(strings.Join(strings.Fields(d.Address), " ")),
		FacilityCode:   strings.ToUpper(strings.TrimSpace(d.FacilityCode)),
	}
}

// Location is a canonical place referenced by bookings.
type Location struct {
	ID string
	Descriptor
	CreatedAt time.Time
}
