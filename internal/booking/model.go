package booking

import (
	"time"

	"github.com/nekogravitycat/freight-booking-backend/internal/location"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
)

var (
	ErrNotFound           = apperror.NotFound("booking not found")
	ErrCannotCancel       = apperror.InvalidInput("cannot cancel booking in its current status")
	ErrCancellationFailed = apperror.InvalidInput("cancellation failed")
	ErrConcurrentUpdate   = apperror.InvalidInput("booking was modified concurrently")
)

type Status string

const (
	StatusReceived            Status = "RECEIVED"
	StatusPendingUpdate       Status = "PENDING_UPDATE"
	StatusConfirmed           Status = "CONFIRMED"
	StatusPendingConfirmation Status = "PENDING_CONFIRMATION"
	StatusCancelled           Status = "CANCELLED"
	StatusRejected            Status = "REJECTED"
	StatusCompleted           Status = "COMPLETED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusPendingUpdate, StatusConfirmed, StatusPendingConfirmation,
		StatusCancelled, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Cancellable reports whether a booking in status s may move to CANCELLED.
func (s Status) Cancellable() bool {
	switch s {
	case StatusReceived, StatusPendingUpdate, StatusConfirmed, StatusPendingConfirmation:
		return true
	}
	return false
}

// Fields are the scalar booking fields shared by requests and stored revisions.
// Empty strings and nil dates mean "not provided".
type Fields struct {
	ReceiptTypeAtOrigin            string
	DeliveryTypeAtDestination      string
	CargoMovementTypeAtOrigin      string
	CargoMovementTypeAtDestination string
	ServiceContractReference       string
	PaymentTermCode                string
	IsPartialLoadAllowed           bool
	IsExportDeclarationRequired    bool
	ExportDeclarationReference     string
	IsImportLicenseRequired        bool
	ImportLicenseReference         string
	ExpectedDepartureDate          *time.Time
	ExpectedArrivalWindowStart     *time.Time
	ExpectedArrivalWindowEnd       *time.Time
	TransportDocumentTypeCode      string
	IncoTerms                      string
	IsEquipmentSubstitutionAllowed bool
	CommunicationChannelCode       string
}

// Request is the client payload for create and update.
type Request struct {
	Fields
	VesselName       string
	VesselIMONumber  string
	VoyageNumber     string
	InvoicePayableAt *location.Descriptor
	PlaceOfIssue     *location.Descriptor
	Children
}

// CancelRequest carries the reason recorded with a cancellation.
type CancelRequest struct {
	Reason string
}

// Booking is one stored revision. Only the active revision has a nil SupersededAt.
type Booking struct {
	ID           string
	Reference    string
	Status       Status
	RequestedAt  time.Time
	UpdatedAt    time.Time
	SupersededAt *time.Time
	Fields

	VesselID           *string
	VoyageID           *string
	InvoicePayableAtID *string
	PlaceOfIssueID     *string

	// Display fields, resolved from the directories.
	VesselName      string
	VesselIMONumber string
	VoyageNumber    string
}

// Aggregate is the active revision together with everything it owns.
type Aggregate struct {
	*Booking
	InvoicePayableAt *location.Descriptor
	PlaceOfIssue     *location.Descriptor
	Children
}

// ListQuery defines the filters of the booking read model. Only active revisions are listed.
type ListQuery struct {
	Status                   Status
	VesselIMONumber          string
	ServiceContractReference string
	Cursor                   pagination.Cursor
}

// SortColumns lists the fields bookings can be sorted by.
var SortColumns = map[string]string{
	"requestedDateTime":              "b.requested_at",
	"updatedDateTime":                "b.updated_at",
	"bookingStatus":                  "b.status",
	"carrierBookingRequestReference": "b.reference",
}

// DefaultSort lists the newest requests first.
var DefaultSort = []pagination.SortField{{Field: "requestedDateTime", Direction: pagination.Desc}}
