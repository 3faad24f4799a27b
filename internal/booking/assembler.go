package booking

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ChildGateway persists one kind of child collection.
type ChildGateway[T any] interface {
	Insert(ctx context.Context, bookingID string, items []T) error
	ListByBookingID(ctx context.Context, bookingID string) ([]T, error)
}

type Gateways struct {
	CargoItems         ChildGateway[CargoItem]
	ServiceRequests    ChildGateway[ServiceRequest]
	RequestedEquipment ChildGateway[RequestedEquipment]
	Parties            ChildGateway[Party]
	Locations          ChildGateway[ShipmentLocation]
	References         ChildGateway[Reference]
}

// Assembler writes and reads the child collections of one revision,
// one goroutine per collection kind.
type Assembler struct {
	gw        Gateways
	locations LocationResolver
}

func NewAssembler(gw Gateways, locations LocationResolver) *Assembler {
	return &Assembler{gw: gw, locations: locations}
}

// CreateChildren writes every non-empty collection of c for bookingID.
// The first failing branch cancels the others and is returned. Durability is
// the caller's transaction's concern.
func (a *Assembler) CreateChildren(ctx context.Context, bookingID string, c Children) error {
	if err := checkEquipment(c.RequestedEquipment); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	insertAll(gctx, g, "cargo items", a.gw.CargoItems, bookingID, c.CargoItems)
	insertAll(gctx, g, "service requests", a.gw.ServiceRequests, bookingID, c.ServiceRequests)
	insertAll(gctx, g, "requested equipment", a.gw.RequestedEquipment, bookingID, c.RequestedEquipment)
	insertAll(gctx, g, "parties", a.gw.Parties, bookingID, c.Parties)
	insertAll(gctx, g, "references", a.gw.References, bookingID, c.References)

	if len(c.Locations) > 0 {
		g.Go(func() error {
			resolved, err := a.resolveLocations(gctx, c.Locations)
			if err != nil {
				return err
			}
			if err := a.gw.Locations.Insert(gctx, bookingID, resolved); err != nil {
				return fmt.Errorf("create shipment locations: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}

func insertAll[T any](ctx context.Context, g *errgroup.Group, what string, gw ChildGateway[T], bookingID string, items []T) {
	if len(items) == 0 {
		return
	}
	g.Go(func() error {
		if err := gw.Insert(ctx, bookingID, items); err != nil {
			return fmt.Errorf("create %s: %w", what, err)
		}
		return nil
	})
}

// resolveLocations returns a copy of locs with every LocationID filled in.
func (a *Assembler) resolveLocations(ctx context.Context, locs []ShipmentLocation) ([]ShipmentLocation, error) {
	out := make([]ShipmentLocation, len(locs))
	for i, l := range locs {
		id, err := a.locations.Resolve(ctx, l.Location)
		if err != nil {
			return nil, err
		}
		l.LocationID = id
		out[i] = l
	}
	return out, nil
}

// FetchChildren reads all collections of bookingID. Missing collections are empty, not nil.
func (a *Assembler) FetchChildren(ctx context.Context, bookingID string) (*Children, error) {
	var c Children

	g, gctx := errgroup.WithContext(ctx)
	fetchAll(gctx, g, "cargo items", a.gw.CargoItems, bookingID, &c.CargoItems)
	fetchAll(gctx, g, "service requests", a.gw.ServiceRequests, bookingID, &c.ServiceRequests)
	fetchAll(gctx, g, "requested equipment", a.gw.RequestedEquipment, bookingID, &c.RequestedEquipment)
	fetchAll(gctx, g, "parties", a.gw.Parties, bookingID, &c.Parties)
	fetchAll(gctx, g, "shipment locations", a.gw.Locations, bookingID, &c.Locations)
	fetchAll(gctx, g, "references", a.gw.References, bookingID, &c.References)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}

func fetchAll[T any](ctx context.Context, g *errgroup.Group, what string, gw ChildGateway[T], bookingID string, dst *[]T) {
	g.Go(func() error {
		items, err := gw.ListByBookingID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", what, err)
		}
		if items == nil {
			items = []T{}
		}
		*dst = items
		return nil
	})
}
