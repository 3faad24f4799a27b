package confirmation

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
)

type Repository interface {
	ListCutOffTimes(ctx context.Context, bookingID string) ([]CutOffTime, error)
	ListEquipment(ctx context.Context, bookingID string) ([]Equipment, error)
	ListCharges(ctx context.Context, bookingID string) ([]Charge, error)
	ListClauses(ctx context.Context, bookingID string) ([]Clause, error)
	ListTransports(ctx context.Context, bookingID string) ([]Transport, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// listRows runs a booking-scoped select and scans every row with scan.
func listRows[T any](ctx context.Context, q db.Querier, table string, columns []string, orderBy string, bookingID string, scan func(pgx.Rows, *T) error) ([]T, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s query failed: %w", table, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s failed: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var item T
		if err := scan(rows, &item); err != nil {
			return nil, fmt.Errorf("scan %s failed: %w", table, err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *pgxRepository) ListCutOffTimes(ctx context.Context, bookingID string) ([]CutOffTime, error) {
	return listRows(ctx, db.Conn(ctx, r.pool), "public.confirmation_cutoff_times",
		[]string{"cutoff_type", "cutoff_at"}, "cutoff_at", bookingID,
		func(rows pgx.Rows, c *CutOffTime) error {
			return rows.Scan(&c.Type, &c.At)
		})
}

func (r *pgxRepository) ListEquipment(ctx context.Context, bookingID string) ([]Equipment, error) {
	return listRows(ctx, db.Conn(ctx, r.pool), "public.confirmation_equipment",
		[]string{"iso_equipment_code", "units"}, "iso_equipment_code", bookingID,
		func(rows pgx.Rows, e *Equipment) error {
			return rows.Scan(&e.ISOEquipmentCode, &e.Units)
		})
}

func (r *pgxRepository) ListCharges(ctx context.Context, bookingID string) ([]Charge, error) {
	return listRows(ctx, db.Conn(ctx, r.pool), "public.confirmation_charges",
		[]string{
			"charge_name", "currency_amount::float8", "currency_code", "coalesce(payment_term_code, '')",
			"coalesce(calculation_basis, '')", "coalesce(unit_price, 0)::float8", "coalesce(quantity, 0)::float8",
		}, "charge_name", bookingID,
		func(rows pgx.Rows, c *Charge) error {
			return rows.Scan(&c.Name, &c.Amount, &c.CurrencyCode, &c.PaymentTermCode, &c.CalculationBasis, &c.UnitPrice, &c.Quantity)
		})
}

func (r *pgxRepository) ListClauses(ctx context.Context, bookingID string) ([]Clause, error) {
	return listRows(ctx, db.Conn(ctx, r.pool), "public.confirmation_clauses",
		[]string{"clause_content"}, "position", bookingID,
		func(rows pgx.Rows, c *Clause) error {
			return rows.Scan(&c.Content)
		})
}

func (r *pgxRepository) ListTransports(ctx context.Context, bookingID string) ([]Transport, error) {
	return listRows(ctx, db.Conn(ctx, r.pool), "public.confirmation_transports",
		[]string{
			"transport_plan_stage", "sequence_number", "load_location_id::text", "discharge_location_id::text",
			"planned_departure", "planned_arrival", "vessel_id::text", "voyage_id::text",
		}, "sequence_number", bookingID,
		func(rows pgx.Rows, t *Transport) error {
			return rows.Scan(
				&t.Stage, &t.SequenceNumber, &t.LoadLocationID, &t.DischargeLocationID,
				&t.PlannedDeparture, &t.PlannedArrival, &t.VesselID, &t.VoyageID,
			)
		})
}
