package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/freight-booking-backend/internal/vessel"
	"github.com/nekogravitycat/freight-booking-backend/internal/voyage"
)

// transportRefs are the directory entries a request points at. Nil when not given.
type transportRefs struct {
	vessel *vessel.Vessel
	voyage *voyage.Voyage
}

func (r transportRefs) apply(b *Booking) {
	if r.vessel != nil {
		b.VesselID = &r.vessel.ID
		b.VesselName = r.vessel.Name
		b.VesselIMONumber = r.vessel.IMONumber
	}
	if r.voyage != nil {
		b.VoyageID = &r.voyage.ID
		b.VoyageNumber = r.voyage.CarrierVoyageNumber
	}
}

func (s *service) resolveTransport(ctx context.Context, req Request) (transportRefs, error) {
	var refs transportRefs

	v, err := s.resolveVessel(ctx, strings.TrimSpace(req.VesselIMONumber), strings.TrimSpace(req.VesselName))
	if err != nil {
		return refs, err
	}
	refs.vessel = v

	if number := strings.TrimSpace(req.VoyageNumber); number != "" {
		vy, err := s.voyages.FindByNumber(ctx, number)
		if err != nil {
			if errors.Is(err, voyage.ErrNotFound) {
				return refs, apperror.InvalidInput("unknown carrierExportVoyageNumber %q", number)
			}
			return refs, err
		}
		refs.voyage = vy
	}
	return refs, nil
}

// resolveVessel never creates vessels. An IMO number wins over the name, and a
// name given alongside it must match the directory exactly.
func (s *service) resolveVessel(ctx context.Context, imo, name string) (*vessel.Vessel, error) {
	switch {
	case imo != "":
		v, err := s.vessels.FindByIMO(ctx, imo)
		if err != nil {
			if errors.Is(err, vessel.ErrNotFound) {
				return nil, apperror.InvalidInput("unknown vesselIMONumber %q", imo)
			}
			return nil, err
		}
		if name != "" && name != v.Name {
			return nil, apperror.InvalidInput("provided vesselName does not match name of existing vesselIMONumber")
		}
		return v, nil

	case name != "":
		matches, err := s.vessels.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		switch len(matches) {
		case 0:
			return nil, apperror.InvalidInput("unknown vesselName %q", name)
		case 1:
			return matches[0], nil
		default:
			return nil, apperror.InvalidInput("ambiguous vesselName, provide vesselIMONumber")
		}
	}
	return nil, nil
}
