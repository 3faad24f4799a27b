package http

import (
	"time"

	"github.com/nekogravitycat/freight-booking-backend/internal/booking"
	"github.com/nekogravitycat/freight-booking-backend/internal/confirmation"
	locHttp "github.com/nekogravitycat/freight-booking-backend/internal/location/http"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/request"
)

const dateLayout = "2006-01-02"

// BookingFields are the scalar fields shared by the request body and the booking response.
type BookingFields struct {
	ReceiptTypeAtOrigin                       string `json:"receiptTypeAtOrigin" binding:"required,oneof=CY SD CFS"`
	DeliveryTypeAtDestination                 string `json:"deliveryTypeAtDestination" binding:"required,oneof=CY SD CFS"`
	CargoMovementTypeAtOrigin                 string `json:"cargoMovementTypeAtOrigin" binding:"required,oneof=FCL LCL BB"`
	CargoMovementTypeAtDestination            string `json:"cargoMovementTypeAtDestination" binding:"required,oneof=FCL LCL BB"`
	ServiceContractReference                  string `json:"serviceContractReference" binding:"required,max=30"`
	PaymentTermCode                           string `json:"paymentTermCode,omitempty" binding:"omitempty,oneof=PRE COL"`
	IsPartialLoadAllowed                      bool   `json:"isPartialLoadAllowed"`
	IsExportDeclarationRequired               bool   `json:"isExportDeclarationRequired"`
	ExportDeclarationReference                string `json:"exportDeclarationReference,omitempty" binding:"max=35"`
	IsImportLicenseRequired                   bool   `json:"isImportLicenseRequired"`
	ImportLicenseReference                    string `json:"importLicenseReference,omitempty" binding:"max=35"`
	ExpectedDepartureDate                     string `json:"expectedDepartureDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	ExpectedArrivalAtPlaceOfDeliveryStartDate string `json:"expectedArrivalAtPlaceOfDeliveryStartDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	ExpectedArrivalAtPlaceOfDeliveryEndDate   string `json:"expectedArrivalAtPlaceOfDeliveryEndDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	TransportDocumentTypeCode                 string `json:"transportDocumentTypeCode,omitempty" binding:"omitempty,oneof=BOL SWB"`
	IncoTerms                                 string `json:"incoTerms,omitempty" binding:"max=3"`
	IsEquipmentSubstitutionAllowed            bool   `json:"isEquipmentSubstitutionAllowed"`
	CommunicationChannelCode                  string `json:"communicationChannelCode" binding:"required,oneof=EI EM AO"`
	VesselName                                string `json:"vesselName,omitempty" binding:"max=35"`
	VesselIMONumber                           string `json:"vesselIMONumber,omitempty" binding:"omitempty,min=7,max=8,numeric"`
	CarrierExportVoyageNumber                 string `json:"carrierExportVoyageNumber,omitempty" binding:"max=50"`
}

func (f BookingFields) toDomain() (booking.Fields, error) {
	departure, err := parseDate(f.ExpectedDepartureDate)
	if err != nil {
		return booking.Fields{}, err
	}
	arrivalStart, err := parseDate(f.ExpectedArrivalAtPlaceOfDeliveryStartDate)
	if err != nil {
		return booking.Fields{}, err
	}
	arrivalEnd, err := parseDate(f.ExpectedArrivalAtPlaceOfDeliveryEndDate)
	if err != nil {
		return booking.Fields{}, err
	}

	return booking.Fields{
		ReceiptTypeAtOrigin:            f.ReceiptTypeAtOrigin,
		DeliveryTypeAtDestination:      f.DeliveryTypeAtDestination,
		CargoMovementTypeAtOrigin:      f.CargoMovementTypeAtOrigin,
		CargoMovementTypeAtDestination: f.CargoMovementTypeAtDestination,
		ServiceContractReference:       f.ServiceContractReference,
		PaymentTermCode:                f.PaymentTermCode,
		IsPartialLoadAllowed:           f.IsPartialLoadAllowed,
		IsExportDeclarationRequired:    f.IsExportDeclarationRequired,
		ExportDeclarationReference:     f.ExportDeclarationReference,
		IsImportLicenseRequired:        f.IsImportLicenseRequired,
		ImportLicenseReference:         f.ImportLicenseReference,
		ExpectedDepartureDate:          departure,
		ExpectedArrivalWindowStart:     arrivalStart,
		ExpectedArrivalWindowEnd:       arrivalEnd,
		TransportDocumentTypeCode:      f.TransportDocumentTypeCode,
		IncoTerms:                      f.IncoTerms,
		IsEquipmentSubstitutionAllowed: f.IsEquipmentSubstitutionAllowed,
		CommunicationChannelCode:       f.CommunicationChannelCode,
	}, nil
}

func newBookingFields(b *booking.Booking) BookingFields {
	f := b.Fields
	return BookingFields{
		ReceiptTypeAtOrigin:                       f.ReceiptTypeAtOrigin,
		DeliveryTypeAtDestination:                 f.DeliveryTypeAtDestination,
		CargoMovementTypeAtOrigin:                 f.CargoMovementTypeAtOrigin,
		CargoMovementTypeAtDestination:            f.CargoMovementTypeAtDestination,
		ServiceContractReference:                  f.ServiceContractReference,
		PaymentTermCode:                           f.PaymentTermCode,
		IsPartialLoadAllowed:                      f.IsPartialLoadAllowed,
		IsExportDeclarationRequired:               f.IsExportDeclarationRequired,
		ExportDeclarationReference:                f.ExportDeclarationReference,
		IsImportLicenseRequired:                   f.IsImportLicenseRequired,
		ImportLicenseReference:                    f.ImportLicenseReference,
		ExpectedDepartureDate:                     formatDate(f.ExpectedDepartureDate),
		ExpectedArrivalAtPlaceOfDeliveryStartDate: formatDate(f.ExpectedArrivalWindowStart),
		ExpectedArrivalAtPlaceOfDeliveryEndDate:   formatDate(f.ExpectedArrivalWindowEnd),
		TransportDocumentTypeCode:                 f.TransportDocumentTypeCode,
		IncoTerms:                                 f.IncoTerms,
		IsEquipmentSubstitutionAllowed:            f.IsEquipmentSubstitutionAllowed,
		CommunicationChannelCode:                  f.CommunicationChannelCode,
		VesselName:                                b.VesselName,
		VesselIMONumber:                           b.VesselIMONumber,
		CarrierExportVoyageNumber:                 b.VoyageNumber,
	}
}

type CargoItemBody struct {
	CommodityType           string   `json:"commodityType" binding:"required,max=550"`
	HSCode                  string   `json:"HSCode,omitempty" binding:"max=10"`
	CargoGrossWeight        *float64 `json:"cargoGrossWeight,omitempty" binding:"omitempty,gte=0"`
	CargoGrossWeightUnit    string   `json:"cargoGrossWeightUnit,omitempty" binding:"omitempty,oneof=KGM LBR"`
	ExportLicenseIssueDate  string   `json:"exportLicenseIssueDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	ExportLicenseExpiryDate string   `json:"exportLicenseExpiryDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

type ServiceRequestBody struct {
	ServiceCode string `json:"serviceCode" binding:"required,max=5"`
}

type RequestedEquipmentBody struct {
	ISOEquipmentCode    string   `json:"ISOEquipmentCode" binding:"required,len=4"`
	Units               int      `json:"units" binding:"required,min=1"`
	IsShipperOwned      bool     `json:"isShipperOwned"`
	EquipmentReferences []string `json:"equipmentReferences,omitempty" binding:"omitempty,dive,required,max=15"`
}

type PartyBody struct {
	PartyName      string `json:"partyName" binding:"required,max=100"`
	PartyFunction  string `json:"partyFunction" binding:"required,max=3"`
	TaxReference   string `json:"taxReference,omitempty" binding:"max=20"`
	Address        string `json:"address,omitempty" binding:"max=250"`
	IsToBeNotified bool   `json:"isToBeNotified"`
}

type ShipmentLocationBody struct {
	LocationTypeCode string               `json:"locationTypeCode" binding:"required,oneof=PRE POL POD PDE PCF OIR ORI IEL PTP RTP FCD"`
	Location         locHttp.LocationBody `json:"location"`
	DisplayedName    string               `json:"displayedName,omitempty" binding:"max=250"`
}

type ReferenceBody struct {
	Type  string `json:"type" binding:"required,max=3"`
	Value string `json:"value" binding:"required,max=100"`
}

// BookingRequestBody is the payload of create and update.
type BookingRequestBody struct {
	BookingFields
	InvoicePayableAt    *locHttp.LocationBody    `json:"invoicePayableAt"`
	PlaceOfIssue        *locHttp.LocationBody    `json:"placeOfIssue"`
	CommodityTypes      []CargoItemBody          `json:"commodities" binding:"omitempty,dive"`
	ValueAddedServices  []ServiceRequestBody     `json:"valueAddedServiceRequests" binding:"omitempty,dive"`
	RequestedEquipments []RequestedEquipmentBody `json:"requestedEquipments" binding:"omitempty,dive"`
	DocumentParties     []PartyBody              `json:"documentParties" binding:"omitempty,dive"`
	ShipmentLocations   []ShipmentLocationBody   `json:"shipmentLocations" binding:"omitempty,dive"`
	References          []ReferenceBody          `json:"references" binding:"omitempty,dive"`
}

// ToRequest maps the payload to the domain request.
func (b *BookingRequestBody) ToRequest() (booking.Request, error) {
	fields, err := b.BookingFields.toDomain()
	if err != nil {
		return booking.Request{}, err
	}

	req := booking.Request{
		Fields:          fields,
		VesselName:      b.VesselName,
		VesselIMONumber: b.VesselIMONumber,
		VoyageNumber:    b.CarrierExportVoyageNumber,
	}
	if b.InvoicePayableAt != nil {
		d := b.InvoicePayableAt.ToDescriptor()
		req.InvoicePayableAt = &d
	}
	if b.PlaceOfIssue != nil {
		d := b.PlaceOfIssue.ToDescriptor()
		req.PlaceOfIssue = &d
	}

	for _, c := range b.CommodityTypes {
		issued, err := parseDate(c.ExportLicenseIssueDate)
		if err != nil {
			return booking.Request{}, err
		}
		expires, err := parseDate(c.ExportLicenseExpiryDate)
		if err != nil {
			return booking.Request{}, err
		}
		req.CargoItems = append(req.CargoItems, booking.CargoItem{
			CommodityType:           c.CommodityType,
			HSCode:                  c.HSCode,
			CargoGrossWeight:        c.CargoGrossWeight,
			CargoGrossWeightUnit:    c.CargoGrossWeightUnit,
			ExportLicenseIssueDate:  issued,
			ExportLicenseExpiryDate: expires,
		})
	}
	for _, s := range b.ValueAddedServices {
		req.ServiceRequests = append(req.ServiceRequests, booking.ServiceRequest{ServiceCode: s.ServiceCode})
	}
	for _, e := range b.RequestedEquipments {
		req.RequestedEquipment = append(req.RequestedEquipment, booking.RequestedEquipment{
			ISOEquipmentCode:    e.ISOEquipmentCode,
			Units:               e.Units,
			IsShipperOwned:      e.IsShipperOwned,
			EquipmentReferences: e.EquipmentReferences,
		})
	}
	for _, p := range b.DocumentParties {
		req.Parties = append(req.Parties, booking.Party{
			PartyName:      p.PartyName,
			PartyFunction:  p.PartyFunction,
			TaxReference:   p.TaxReference,
			Address:        p.Address,
			IsToBeNotified: p.IsToBeNotified,
		})
	}
	for _, l := range b.ShipmentLocations {
		req.Locations = append(req.Locations, booking.ShipmentLocation{
			LocationTypeCode: l.LocationTypeCode,
			Location:         l.Location.ToDescriptor(),
			DisplayedName:    l.DisplayedName,
		})
	}
	for _, r := range b.References {
		req.References = append(req.References, booking.Reference{Type: r.Type, Value: r.Value})
	}
	return req, nil
}

// CancelBookingBody is the payload of a cancellation.
type CancelBookingBody struct {
	BookingStatus string `json:"bookingStatus" binding:"required,eq=CANCELLED"`
	Reason        string `json:"reason" binding:"max=250"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Status                   string `form:"bookingStatus" binding:"omitempty,oneof=RECEIVED PENDING_UPDATE CONFIRMED PENDING_CONFIRMATION CANCELLED REJECTED COMPLETED"`
	VesselIMONumber          string `form:"vesselIMONumber" binding:"omitempty,max=8"`
	ServiceContractReference string `form:"serviceContractReference" binding:"omitempty,max=30"`
}

// BookingSummaryResponse is returned by create, update, cancel, list and history.
type BookingSummaryResponse struct {
	Reference                 string     `json:"carrierBookingRequestReference"`
	Status                    string     `json:"bookingStatus"`
	RequestedDateTime         time.Time  `json:"bookingRequestCreatedDateTime"`
	UpdatedDateTime           time.Time  `json:"bookingRequestUpdatedDateTime"`
	SupersededDateTime        *time.Time `json:"supersededDateTime,omitempty"`
	ServiceContractReference  string     `json:"serviceContractReference,omitempty"`
	VesselName                string     `json:"vesselName,omitempty"`
	VesselIMONumber           string     `json:"vesselIMONumber,omitempty"`
	CarrierExportVoyageNumber string     `json:"carrierExportVoyageNumber,omitempty"`
}

func NewBookingSummaryResponse(b *booking.Booking) BookingSummaryResponse {
	return BookingSummaryResponse{
		Reference:                 b.Reference,
		Status:                    string(b.Status),
		RequestedDateTime:         b.RequestedAt,
		UpdatedDateTime:           b.UpdatedAt,
		SupersededDateTime:        b.SupersededAt,
		ServiceContractReference:  b.ServiceContractReference,
		VesselName:                b.VesselName,
		VesselIMONumber:           b.VesselIMONumber,
		CarrierExportVoyageNumber: b.VoyageNumber,
	}
}

// BookingResponse is the full aggregate.
type BookingResponse struct {
	Reference         string    `json:"carrierBookingRequestReference"`
	Status            string    `json:"bookingStatus"`
	RequestedDateTime time.Time `json:"bookingRequestCreatedDateTime"`
	UpdatedDateTime   time.Time `json:"bookingRequestUpdatedDateTime"`
	BookingFields
	InvoicePayableAt    *locHttp.LocationBody    `json:"invoicePayableAt,omitempty"`
	PlaceOfIssue        *locHttp.LocationBody    `json:"placeOfIssue,omitempty"`
	CommodityTypes      []CargoItemBody          `json:"commodities"`
	ValueAddedServices  []ServiceRequestBody     `json:"valueAddedServiceRequests"`
	RequestedEquipments []RequestedEquipmentBody `json:"requestedEquipments"`
	DocumentParties     []PartyBody              `json:"documentParties"`
	ShipmentLocations   []ShipmentLocationBody   `json:"shipmentLocations"`
	References          []ReferenceBody          `json:"references"`
}

func NewBookingResponse(a *booking.Aggregate) BookingResponse {
	resp := BookingResponse{
		Reference:           a.Reference,
		Status:              string(a.Status),
		RequestedDateTime:   a.RequestedAt,
		UpdatedDateTime:     a.UpdatedAt,
		BookingFields:       newBookingFields(a.Booking),
		CommodityTypes:      make([]CargoItemBody, len(a.CargoItems)),
		ValueAddedServices:  make([]ServiceRequestBody, len(a.ServiceRequests)),
		RequestedEquipments: make([]RequestedEquipmentBody, len(a.RequestedEquipment)),
		DocumentParties:     make([]PartyBody, len(a.Parties)),
		ShipmentLocations:   make([]ShipmentLocationBody, len(a.Locations)),
		References:          make([]ReferenceBody, len(a.References)),
	}
	if a.InvoicePayableAt != nil {
		l := locHttp.NewLocationBody(*a.InvoicePayableAt)
		resp.InvoicePayableAt = &l
	}
	if a.PlaceOfIssue != nil {
		l := locHttp.NewLocationBody(*a.PlaceOfIssue)
		resp.PlaceOfIssue = &l
	}

	for i, c := range a.CargoItems {
		resp.CommodityTypes[i] = CargoItemBody{
			CommodityType:           c.CommodityType,
			HSCode:                  c.HSCode,
			CargoGrossWeight:        c.CargoGrossWeight,
			CargoGrossWeightUnit:    c.CargoGrossWeightUnit,
			ExportLicenseIssueDate:  formatDate(c.ExportLicenseIssueDate),
			ExportLicenseExpiryDate: formatDate(c.ExportLicenseExpiryDate),
		}
	}
	for i, s := range a.ServiceRequests {
		resp.ValueAddedServices[i] = ServiceRequestBody{ServiceCode: s.ServiceCode}
	}
	for i, e := range a.RequestedEquipment {
		resp.RequestedEquipments[i] = RequestedEquipmentBody{
			ISOEquipmentCode:    e.ISOEquipmentCode,
			Units:               e.Units,
			IsShipperOwned:      e.IsShipperOwned,
			EquipmentReferences: e.EquipmentReferences,
		}
	}
	for i, p := range a.Parties {
		resp.DocumentParties[i] = PartyBody{
			PartyName:      p.PartyName,
			PartyFunction:  p.PartyFunction,
			TaxReference:   p.TaxReference,
			Address:        p.Address,
			IsToBeNotified: p.IsToBeNotified,
		}
	}
	for i, l := range a.Locations {
		resp.ShipmentLocations[i] = ShipmentLocationBody{
			LocationTypeCode: l.LocationTypeCode,
			Location:         locHttp.NewLocationBody(l.Location),
			DisplayedName:    l.DisplayedName,
		}
	}
	for i, r := range a.References {
		resp.References[i] = ReferenceBody{Type: r.Type, Value: r.Value}
	}
	return resp
}

type CutOffTimeResponse struct {
	Type     string    `json:"cutOffDateTimeCode"`
	DateTime time.Time `json:"cutOffDateTime"`
}

type ConfirmedEquipmentResponse struct {
	ISOEquipmentCode string `json:"ISOEquipmentCode"`
	Units            int    `json:"units"`
}

type ChargeResponse struct {
	Name             string  `json:"chargeName"`
	Amount           float64 `json:"currencyAmount"`
	CurrencyCode     string  `json:"currencyCode"`
	PaymentTermCode  string  `json:"paymentTermCode,omitempty"`
	CalculationBasis string  `json:"calculationBasis,omitempty"`
	UnitPrice        float64 `json:"unitPrice,omitempty"`
	Quantity         float64 `json:"quantity,omitempty"`
}

type TransportResponse struct {
	Stage               string     `json:"transportPlanStage"`
	SequenceNumber      int        `json:"transportPlanStageSequenceNumber"`
	LoadLocationID      *string    `json:"loadLocationID,omitempty"`
	DischargeLocationID *string    `json:"dischargeLocationID,omitempty"`
	PlannedDeparture    *time.Time `json:"plannedDepartureDate,omitempty"`
	PlannedArrival      *time.Time `json:"plannedArrivalDate,omitempty"`
	VesselID            *string    `json:"vesselID,omitempty"`
	VoyageID            *string    `json:"voyageID,omitempty"`
}

// ConfirmationResponse is the carrier's confirmation of the active revision.
type ConfirmationResponse struct {
	Reference          string                       `json:"carrierBookingRequestReference"`
	CutOffTimes        []CutOffTimeResponse         `json:"shipmentCutOffTimes"`
	ConfirmedEquipment []ConfirmedEquipmentResponse `json:"confirmedEquipments"`
	Charges            []ChargeResponse             `json:"charges"`
	CarrierClauses     []string                     `json:"carrierClauses"`
	Transports         []TransportResponse          `json:"transports"`
}

func NewConfirmationResponse(reference string, c *confirmation.Confirmation) ConfirmationResponse {
	resp := ConfirmationResponse{
		Reference:          reference,
		CutOffTimes:        make([]CutOffTimeResponse, len(c.CutOffTimes)),
		ConfirmedEquipment: make([]ConfirmedEquipmentResponse, len(c.Equipment)),
		Charges:            make([]ChargeResponse, len(c.Charges)),
		CarrierClauses:     make([]string, len(c.Clauses)),
		Transports:         make([]TransportResponse, len(c.Transports)),
	}
	for i, t := range c.CutOffTimes {
		resp.CutOffTimes[i] = CutOffTimeResponse{Type: t.Type, DateTime: t.At}
	}
	for i, e := range c.Equipment {
		resp.ConfirmedEquipment[i] = ConfirmedEquipmentResponse{ISOEquipmentCode: e.ISOEquipmentCode, Units: e.Units}
	}
	for i, ch := range c.Charges {
		resp.Charges[i] = ChargeResponse(ch)
	}
	for i, cl := range c.Clauses {
		resp.CarrierClauses[i] = cl.Content
	}
	for i, t := range c.Transports {
		resp.Transports[i] = TransportResponse(t)
	}
	return resp
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
