package confirmation

import "time"

type CutOffTime struct {
	Type string
	At   time.Time
}

type Equipment struct {
	ISOEquipmentCode string
	Units            int
}

type Charge struct {
	Name             string
	Amount           float64
	CurrencyCode     string
	PaymentTermCode  string
	CalculationBasis string
	UnitPrice        float64
	Quantity         float64
}

type Clause struct {
	Content string
}

type Transport struct {
	Stage               string
	SequenceNumber      int
	LoadLocationID      *string
	DischargeLocationID *string
	PlannedDeparture    *time.Time
	PlannedArrival      *time.Time
	VesselID            *string
	VoyageID            *string
}

// Confirmation is the carrier's answer to a booking, written by the
// confirmation process and only read here.
type Confirmation struct {
	BookingID   string
	CutOffTimes []CutOffTime
	Equipment   []Equipment
	Charges     []Charge
	Clauses     []Clause
	Transports  []Transport
}
