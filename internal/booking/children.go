package booking

import (
	"time"

	"github.com/nekogravitycat/freight-booking-backend/internal/location"
)

// Children holds the six collections owned by one revision.
type Children struct {
	CargoItems         []CargoItem
	ServiceRequests    []ServiceRequest
	RequestedEquipment []RequestedEquipment
	Parties            []Party
	Locations          []ShipmentLocation
	References         []Reference
}

type CargoItem struct {
	CommodityType           string
	HSCode                  string
	CargoGrossWeight        *float64
	CargoGrossWeightUnit    string
	ExportLicenseIssueDate  *time.Time
	ExportLicenseExpiryDate *time.Time
}

type ServiceRequest struct {
	ServiceCode string
}

// RequestedEquipment may list at most Units equipment references.
type RequestedEquipment struct {
	ISOEquipmentCode    string
	Units               int
	IsShipperOwned      bool
	EquipmentReferences []string
}

type Party struct {
	PartyName      string
	PartyFunction  string
	TaxReference   string
	Address        string
	IsToBeNotified bool
}

// ShipmentLocation ties a location to the booking with a role such as PRE (place of receipt).
// LocationID is empty on input and filled once the location is resolved.
type ShipmentLocation struct {
	LocationTypeCode string
	Location         location.Descriptor
	LocationID       string
	DisplayedName    string
}

type Reference struct {
	Type  string
	Value string
}

// Row mapping. Each function turns one item into the values of its table
// columns, in the order of the matching *Columns slice.

var cargoItemColumns = []string{
	"commodity_type", "hs_code", "cargo_gross_weight", "cargo_gross_weight_unit",
	"export_license_issue_date", "export_license_expiry_date",
}

func cargoItemValues(c CargoItem) []any {
	return []any{
		c.CommodityType, nullIfEmpty(c.HSCode), c.CargoGrossWeight, nullIfEmpty(c.CargoGrossWeightUnit),
		c.ExportLicenseIssueDate, c.ExportLicenseExpiryDate,
	}
}

var cargoItemSelect = []string{
	"commodity_type", "coalesce(hs_code, '')", "cargo_gross_weight::float8",
	"coalesce(cargo_gross_weight_unit, '')", "export_license_issue_date", "export_license_expiry_date",
}

func cargoItemDest(c *CargoItem) []any {
	return []any{
		&c.CommodityType, &c.HSCode, &c.CargoGrossWeight, &c.CargoGrossWeightUnit,
		&c.ExportLicenseIssueDate, &c.ExportLicenseExpiryDate,
	}
}

var serviceRequestColumns = []string{"service_code"}

func serviceRequestValues(s ServiceRequest) []any {
	return []any{s.ServiceCode}
}

func serviceRequestDest(s *ServiceRequest) []any {
	return []any{&s.ServiceCode}
}

var partyColumns = []string{"party_name", "party_function", "tax_reference", "address", "is_to_be_notified"}

func partyValues(p Party) []any {
	return []any{p.PartyName, p.PartyFunction, nullIfEmpty(p.TaxReference), nullIfEmpty(p.Address), p.IsToBeNotified}
}

var partySelect = []string{
	"party_name", "party_function", "coalesce(tax_reference, '')", "coalesce(address, '')", "is_to_be_notified",
}

func partyDest(p *Party) []any {
	return []any{&p.PartyName, &p.PartyFunction, &p.TaxReference, &p.Address, &p.IsToBeNotified}
}

var shipmentLocationColumns = []string{"location_type_code", "location_id", "displayed_name"}

func shipmentLocationValues(l ShipmentLocation) []any {
	return []any{l.LocationTypeCode, l.LocationID, nullIfEmpty(l.DisplayedName)}
}

var shipmentLocationSelect = []string{"location_type_code", "location_id::text", "coalesce(displayed_name, '')"}

func shipmentLocationDest(l *ShipmentLocation) []any {
	return []any{&l.LocationTypeCode, &l.LocationID, &l.DisplayedName}
}

var referenceColumns = []string{"reference_type", "reference_value"}

func referenceValues(r Reference) []any {
	return []any{r.Type, r.Value}
}

func referenceDest(r *Reference) []any {
	return []any{&r.Type, &r.Value}
}

// nullIfEmpty stores absent optional strings as NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
