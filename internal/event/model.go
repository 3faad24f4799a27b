package event

import "time"

// Kind names a lifecycle transition of a booking.
type Kind string

const (
	KindBookingCreated   Kind = "BOOKING_CREATED"
	KindBookingUpdated   Kind = "BOOKING_UPDATED"
	KindBookingCancelled Kind = "BOOKING_CANCELLED"
)

// Event is one lifecycle notification, stored in the outbox until relayed.
type Event struct {
	ID          string     `json:"eventID"`
	BookingID   string     `json:"bookingID"`
	Reference   string     `json:"carrierBookingRequestReference"`
	Kind        Kind       `json:"eventKind"`
	Status      string     `json:"bookingStatus"`
	Reason      *string    `json:"reason,omitempty"`
	OccurredAt  time.Time  `json:"eventDateTime"`
	PublishedAt *time.Time `json:"-"`
}

// RoutingKey is the broker routing key for the event, e.g. "booking.cancelled".
func (e Event) RoutingKey() string {
	switch e.Kind {
	case KindBookingCreated:
		return "booking.created"
	case KindBookingUpdated:
		return "booking.updated"
	case KindBookingCancelled:
		return "booking.cancelled"
	default:
		return "booking.unknown"
	}
}
