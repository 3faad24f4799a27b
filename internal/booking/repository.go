package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
)

const activeReferenceIndex = "bookings_active_reference_idx"

// Repository stores booking revisions. Child collections live behind the Gateways.
type Repository interface {
	// Insert stores a new revision and fills in its ID. A revision without a
	// reference gets one assigned by the database.
	Insert(ctx context.Context, b *Booking) error
	// ListActive returns the revisions of reference that are not superseded.
	ListActive(ctx context.Context, reference string) ([]*Booking, error)
	// Supersede marks revision id as superseded at the given time. It reports
	// false when the revision was already superseded.
	Supersede(ctx context.Context, id string, at time.Time) (bool, error)
	// UpdateStatus moves the active revision of reference from one status to
	// another. It reports false when the current status is no longer from.
	UpdateStatus(ctx context.Context, reference string, from, to Status, at time.Time) (bool, error)
	List(ctx context.Context, q ListQuery) ([]*Booking, int, error)
	History(ctx context.Context, reference string) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id::text", "b.reference", "b.status", "b.requested_at", "b.updated_at", "b.superseded_at",
	"coalesce(b.receipt_type_at_origin, '')", "coalesce(b.delivery_type_at_destination, '')",
	"coalesce(b.cargo_movement_type_at_origin, '')", "coalesce(b.cargo_movement_type_at_destination, '')",
	"coalesce(b.service_contract_reference, '')", "coalesce(b.payment_term_code, '')",
	"b.is_partial_load_allowed",
	"b.is_export_declaration_required", "coalesce(b.export_declaration_reference, '')",
	"b.is_import_license_required", "coalesce(b.import_license_reference, '')",
	"b.expected_departure_date", "b.expected_arrival_window_start", "b.expected_arrival_window_end",
	"coalesce(b.transport_document_type_code, '')", "coalesce(b.inco_terms, '')",
	"b.is_equipment_substitution_allowed", "coalesce(b.communication_channel_code, '')",
	"b.vessel_id::text", "b.voyage_id::text", "b.invoice_payable_at_id::text", "b.place_of_issue_id::text",
}

// displayColumns follow bookingColumns in read-model queries joined with the directories.
var displayColumns = []string{
	"coalesce(v.name, '')", "coalesce(v.imo_number, '')", "coalesce(vy.carrier_voyage_number, '')",
}

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	f := &b.Fields
	dest := []any{
		&b.ID, &b.Reference, &b.Status, &b.RequestedAt, &b.UpdatedAt, &b.SupersededAt,
		&f.ReceiptTypeAtOrigin, &f.DeliveryTypeAtDestination,
		&f.CargoMovementTypeAtOrigin, &f.CargoMovementTypeAtDestination,
		&f.ServiceContractReference, &f.PaymentTermCode,
		&f.IsPartialLoadAllowed,
		&f.IsExportDeclarationRequired, &f.ExportDeclarationReference,
		&f.IsImportLicenseRequired, &f.ImportLicenseReference,
		&f.ExpectedDepartureDate, &f.ExpectedArrivalWindowStart, &f.ExpectedArrivalWindowEnd,
		&f.TransportDocumentTypeCode, &f.IncoTerms,
		&f.IsEquipmentSubstitutionAllowed, &f.CommunicationChannelCode,
		&b.VesselID, &b.VoyageID, &b.InvoicePayableAtID, &b.PlaceOfIssueID,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *pgxRepository) Insert(ctx context.Context, b *Booking) error {
	f := b.Fields
	columns := []string{
		"status", "requested_at", "updated_at",
		"receipt_type_at_origin", "delivery_type_at_destination",
		"cargo_movement_type_at_origin", "cargo_movement_type_at_destination",
		"service_contract_reference", "payment_term_code", "is_partial_load_allowed",
		"is_export_declaration_required", "export_declaration_reference",
		"is_import_license_required", "import_license_reference",
		"expected_departure_date", "expected_arrival_window_start", "expected_arrival_window_end",
		"transport_document_type_code", "inco_terms", "is_equipment_substitution_allowed",
		"communication_channel_code",
		"vessel_id", "voyage_id", "invoice_payable_at_id", "place_of_issue_id",
	}
	values := []any{
		b.Status, b.RequestedAt, b.UpdatedAt,
		nullIfEmpty(f.ReceiptTypeAtOrigin), nullIfEmpty(f.DeliveryTypeAtDestination),
		nullIfEmpty(f.CargoMovementTypeAtOrigin), nullIfEmpty(f.CargoMovementTypeAtDestination),
		nullIfEmpty(f.ServiceContractReference), nullIfEmpty(f.PaymentTermCode), f.IsPartialLoadAllowed,
		f.IsExportDeclarationRequired, nullIfEmpty(f.ExportDeclarationReference),
		f.IsImportLicenseRequired, nullIfEmpty(f.ImportLicenseReference),
		f.ExpectedDepartureDate, f.ExpectedArrivalWindowStart, f.ExpectedArrivalWindowEnd,
		nullIfEmpty(f.TransportDocumentTypeCode), nullIfEmpty(f.IncoTerms), f.IsEquipmentSubstitutionAllowed,
		nullIfEmpty(f.CommunicationChannelCode),
		b.VesselID, b.VoyageID, b.InvoicePayableAtID, b.PlaceOfIssueID,
	}
	if b.Reference != "" {
		columns = append(columns, "reference")
		values = append(values, b.Reference)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id::text, reference").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking query failed: %w", err)
	}

	if err := db.Conn(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&b.ID, &b.Reference); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == activeReferenceIndex {
			return ErrConcurrentUpdate
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListActive(ctx context.Context, reference string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Where(squirrel.Eq{"b.reference": reference, "b.superseded_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get active booking query failed: %w", err)
	}

	return r.query(ctx, query, args, false)
}

func (r *pgxRepository) Supersede(ctx context.Context, id string, at time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("superseded_at", at).
		Where(squirrel.Eq{"id": id, "superseded_at": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build supersede booking query failed: %w", err)
	}

	ct, err := db.Conn(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("supersede booking failed: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, reference string, from, to Status, at time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", at).
		Where(squirrel.Eq{"reference": reference, "status": from, "superseded_at": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := db.Conn(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) List(ctx context.Context, q ListQuery) ([]*Booking, int, error) {
	order, err := pagination.OrderClauses(q.Cursor.Sort, SortColumns)
	if err != nil {
		return nil, 0, apperror.InvalidInput("%s", err.Error())
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(append([]string{}, bookingColumns...), displayColumns...)
	query := psql.Select(append(columns, "count(*) OVER() as total_count")...).
		From("public.bookings b").
		LeftJoin("public.vessels v ON b.vessel_id = v.id").
		LeftJoin("public.voyages vy ON b.voyage_id = vy.id").
		Where(squirrel.Eq{"b.superseded_at": nil})

	if q.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": q.Status})
	}
	if q.VesselIMONumber != "" {
		query = query.Where(squirrel.Eq{"v.imo_number": q.VesselIMONumber})
	}
	if q.ServiceContractReference != "" {
		query = query.Where(squirrel.Eq{"b.service_contract_reference": q.ServiceContractReference})
	}

	// Reference breaks ties so pages stay stable.
	query = query.OrderBy(append(order, "b.reference ASC")...).
		Limit(uint64(q.Cursor.PageSize)).
		Offset(uint64(q.Cursor.Offset()))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &b.VesselName, &b.VesselIMONumber, &b.VoyageNumber, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, total, rows.Err()
}

func (r *pgxRepository) History(ctx context.Context, reference string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(append(append([]string{}, bookingColumns...), displayColumns...)...).
		From("public.bookings b").
		LeftJoin("public.vessels v ON b.vessel_id = v.id").
		LeftJoin("public.voyages vy ON b.voyage_id = vy.id").
		Where(squirrel.Eq{"b.reference": reference}).
		OrderBy("b.updated_at DESC", "b.superseded_at DESC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking history query failed: %w", err)
	}

	return r.query(ctx, query, args, true)
}

func (r *pgxRepository) query(ctx context.Context, query string, args []any, withDisplay bool) ([]*Booking, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		var extra []any
		if withDisplay {
			extra = []any{&b.VesselName, &b.VesselIMONumber, &b.VoyageNumber}
		}
		if err := scanBooking(rows, &b, extra...); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
