package booking

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
)

// NewPgxGateways returns the Postgres gateways for every child collection.
func NewPgxGateways(pool *pgxpool.Pool) Gateways {
	return Gateways{
		CargoItems: &childTable[CargoItem]{
			pool: pool, table: "public.booking_cargo_items",
			columns: cargoItemColumns, selects: cargoItemSelect,
			values: cargoItemValues, dest: cargoItemDest,
		},
		ServiceRequests: &childTable[ServiceRequest]{
			pool: pool, table: "public.booking_service_requests",
			columns: serviceRequestColumns, selects: serviceRequestColumns,
			values: serviceRequestValues, dest: serviceRequestDest,
		},
		RequestedEquipment: &equipmentTable{pool: pool},
		Parties: &childTable[Party]{
			pool: pool, table: "public.booking_parties",
			columns: partyColumns, selects: partySelect,
			values: partyValues, dest: partyDest,
		},
		Locations: &childTable[ShipmentLocation]{
			pool: pool, table: "public.booking_locations",
			columns: shipmentLocationColumns, selects: shipmentLocationSelect,
			values: shipmentLocationValues, dest: shipmentLocationDest,
		},
		References: &childTable[Reference]{
			pool: pool, table: "public.booking_references",
			columns: referenceColumns, selects: referenceColumns,
			values: referenceValues, dest: referenceDest,
		},
	}
}

// childTable stores one flat collection. Rows keep their input order through the position column.
type childTable[T any] struct {
	pool    *pgxpool.Pool
	table   string
	columns []string
	selects []string
	values  func(T) []any
	dest    func(*T) []any
}

func (t *childTable[T]) Insert(ctx context.Context, bookingID string, items []T) error {
	if len(items) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Insert(t.table).Columns(append([]string{"booking_id", "position"}, t.columns...)...)
	for i, item := range items {
		q = q.Values(append([]any{bookingID, i}, t.values(item)...)...)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s query failed: %w", t.table, err)
	}
	if _, err := db.Conn(ctx, t.pool).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s failed: %w", t.table, err)
	}
	return nil
}

func (t *childTable[T]) ListByBookingID(ctx context.Context, bookingID string) ([]T, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(t.selects...).
		From(t.table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s query failed: %w", t.table, err)
	}

	rows, err := db.Conn(ctx, t.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s failed: %w", t.table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var item T
		if err := rows.Scan(t.dest(&item)...); err != nil {
			return nil, fmt.Errorf("scan %s failed: %w", t.table, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// equipmentTable writes requested equipment and its unit references.
type equipmentTable struct {
	pool *pgxpool.Pool
}

func (t *equipmentTable) Insert(ctx context.Context, bookingID string, items []RequestedEquipment) error {
	q := db.Conn(ctx, t.pool)
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	for i, e := range items {
		query, args, err := psql.Insert("public.booking_requested_equipment").
			Columns("booking_id", "position", "iso_equipment_code", "units", "is_shipper_owned").
			Values(bookingID, i, e.ISOEquipmentCode, e.Units, e.IsShipperOwned).
			Suffix("RETURNING id::text").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert equipment query failed: %w", err)
		}

		var equipmentID string
		if err := q.QueryRow(ctx, query, args...).Scan(&equipmentID); err != nil {
			return fmt.Errorf("insert equipment failed: %w", err)
		}

		if len(e.EquipmentReferences) == 0 {
			continue
		}
		units := psql.Insert("public.booking_equipment_units").
			Columns("requested_equipment_id", "position", "equipment_reference")
		for j, ref := range e.EquipmentReferences {
			units = units.Values(equipmentID, j, ref)
		}
		query, args, err = units.ToSql()
		if err != nil {
			return fmt.Errorf("build insert equipment units query failed: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert equipment units failed: %w", err)
		}
	}
	return nil
}

func (t *equipmentTable) ListByBookingID(ctx context.Context, bookingID string) ([]RequestedEquipment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"e.iso_equipment_code", "e.units", "e.is_shipper_owned",
		"coalesce(array_agg(u.equipment_reference ORDER BY u.position) FILTER (WHERE u.equipment_reference IS NOT NULL), '{}')",
	).
		From("public.booking_requested_equipment e").
		LeftJoin("public.booking_equipment_units u ON u.requested_equipment_id = e.id").
		Where(squirrel.Eq{"e.booking_id": bookingID}).
		GroupBy("e.id").
		OrderBy("e.position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list equipment query failed: %w", err)
	}

	rows, err := db.Conn(ctx, t.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment failed: %w", err)
	}
	defer rows.Close()

	items := []RequestedEquipment{}
	for rows.Next() {
		var e RequestedEquipment
		if err := rows.Scan(&e.ISOEquipmentCode, &e.Units, &e.IsShipperOwned, &e.EquipmentReferences); err != nil {
			return nil, fmt.Errorf("scan equipment failed: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
