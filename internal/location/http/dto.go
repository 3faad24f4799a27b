package http

import (
	"time"

	"github.com/nekogravitycat/freight-booking-backend/internal/location"
)

// LocationBody is the descriptive form clients send for a location.
type LocationBody struct {
	LocationName   string `json:"locationName" binding:"max=100"`
	UNLocationCode string `json:"UNLocationCode" binding:"omitempty,len=5"`
	Address        string `json:"address" binding:"max=250"`
	FacilityCode   string `json:"facilityCode" binding:"max=6"`
}

// ToDescriptor maps the body to the domain descriptor.
func (b LocationBody) ToDescriptor() location.Descriptor {
	return location.Descriptor{
		LocationName:   b.LocationName,
		UNLocationCode: b.UNLocationCode,
		Address:        b.Address,
		FacilityCode:   b.FacilityCode,
	}
}

// NewLocationBody maps a descriptor back to its wire form.
func NewLocationBody(d location.Descriptor) LocationBody {
	return LocationBody{
		LocationName:   d.LocationName,
		UNLocationCode: d.UNLocationCode,
		Address:        d.Address,
		FacilityCode:   d.FacilityCode,
	}
}

type LocationResponse struct {
	ID string `json:"id"`
	LocationBody
	CreatedAt time.Time `json:"createdAt"`
}

func NewLocationResponse(l *location.Location) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		LocationBody: NewLocationBody(l.Descriptor),
		CreatedAt:    l.CreatedAt,
	}
}
