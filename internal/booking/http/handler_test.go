package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/freight-booking-backend/internal/booking"
	"github.com/nekogravitycat/freight-booking-backend/internal/confirmation"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/response"
)

type fakeService struct {
	lastRequest booking.Request
	lastQuery   booking.ListQuery
	lastReason  string
	list        []*booking.Booking
	total       int
	err         error
}

var requestedAt = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func (f *fakeService) summary(reference string) *booking.Booking {
	return &booking.Booking{
		ID:          "b1",
		Reference:   reference,
		Status:      booking.StatusReceived,
		RequestedAt: requestedAt,
		UpdatedAt:   requestedAt,
		VesselName:  "Atlantic Star",
	}
}

func (f *fakeService) Create(_ context.Context, req booking.Request) (*booking.Booking, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.summary("ABC123"), nil
}

func (f *fakeService) Update(_ context.Context, reference string, req booking.Request) (*booking.Booking, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.summary(reference), nil
}

func (f *fakeService) Cancel(_ context.Context, reference string, req booking.CancelRequest) (*booking.Booking, error) {
	f.lastReason = req.Reason
	if f.err != nil {
		return nil, f.err
	}
	b := f.summary(reference)
	b.Status = booking.StatusCancelled
	return b, nil
}

func (f *fakeService) Get(_ context.Context, reference string) (*booking.Aggregate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &booking.Aggregate{
		Booking: f.summary(reference),
		Children: booking.Children{
			RequestedEquipment: []booking.RequestedEquipment{{ISOEquipmentCode: "22G1", Units: 2}},
		},
	}, nil
}

func (f *fakeService) GetConfirmation(_ context.Context, reference string) (*confirmation.Confirmation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &confirmation.Confirmation{
		BookingID: "b1",
		Clauses:   []confirmation.Clause{{Content: "Subject to space availability"}},
	}, nil
}

func (f *fakeService) List(_ context.Context, q booking.ListQuery) ([]*booking.Booking, int, error) {
	f.lastQuery = q
	return f.list, f.total, f.err
}

func (f *fakeService) History(_ context.Context, reference string) ([]*booking.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*booking.Booking{f.summary(reference), f.summary(reference)}, nil
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, pagination.Options{DefaultPageSize: 2, MaxPageSize: 10})
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), h, pass, pass)
	return r
}

func executeRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() map[string]any {
	return map[string]any{
		"receiptTypeAtOrigin":            "CY",
		"deliveryTypeAtDestination":      "CY",
		"cargoMovementTypeAtOrigin":      "FCL",
		"cargoMovementTypeAtDestination": "FCL",
		"serviceContractReference":       "SC-2026-001",
		"communicationChannelCode":       "AO",
		"vesselIMONumber":                "9321483",
		"expectedDepartureDate":          "2026-05-01",
		"requestedEquipments": []map[string]any{
			{"ISOEquipmentCode": "22G1", "units": 3, "equipmentReferences": []string{"APZU4812090"}},
		},
		"shipmentLocations": []map[string]any{
			{"locationTypeCode": "PRE", "location": map[string]any{"UNLocationCode": "NLRTM"}},
		},
	}
}

func TestCreateBooking(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	w := executeRequest(r, http.MethodPost, "/v1/bookings", validBody())

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp BookingSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ABC123", resp.Reference)
	assert.Equal(t, "RECEIVED", resp.Status)

	req := svc.lastRequest
	assert.Equal(t, "9321483", req.VesselIMONumber)
	require.NotNil(t, req.ExpectedDepartureDate)
	assert.Equal(t, "2026-05-01", req.ExpectedDepartureDate.Format(dateLayout))
	require.Len(t, req.RequestedEquipment, 1)
	assert.Equal(t, 3, req.RequestedEquipment[0].Units)
	require.Len(t, req.Locations, 1)
	assert.Equal(t, "NLRTM", req.Locations[0].Location.UNLocationCode)
	assert.Nil(t, req.CargoItems)
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	r := newTestRouter(&fakeService{})

	body := validBody()
	body["receiptTypeAtOrigin"] = "TRUCK"
	w := executeRequest(r, http.MethodPost, "/v1/bookings", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = validBody()
	body["expectedDepartureDate"] = "01/05/2026"
	w = executeRequest(r, http.MethodPost, "/v1/bookings", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
		kind string
	}{
		{booking.ErrNotFound, http.StatusNotFound, "not_found"},
		{booking.ErrCannotCancel, http.StatusBadRequest, "invalid_input"},
		{booking.ErrCancellationFailed, http.StatusBadRequest, "invalid_input"},
	}

	for _, tc := range cases {
		r := newTestRouter(&fakeService{err: tc.err})

		w := executeRequest(r, http.MethodPatch, "/v1/bookings/ABC123/cancel", map[string]any{"bookingStatus": "CANCELLED"})

		require.Equal(t, tc.code, w.Code)
		var resp response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.err.Error(), resp.Error)
		assert.Equal(t, tc.kind, resp.Kind)
	}
}

func TestCancelBooking(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	w := executeRequest(r, http.MethodPatch, "/v1/bookings/ABC123/cancel",
		map[string]any{"bookingStatus": "CANCELLED", "reason": "cargo not ready"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cargo not ready", svc.lastReason)

	w = executeRequest(r, http.MethodPatch, "/v1/bookings/ABC123/cancel", map[string]any{"bookingStatus": "CONFIRMED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBooking(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := executeRequest(r, http.MethodGet, "/v1/bookings/ABC123", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ABC123", resp.Reference)
	assert.Equal(t, "Atlantic Star", resp.VesselName)
	require.Len(t, resp.RequestedEquipments, 1)
	assert.NotNil(t, resp.CommodityTypes)
	assert.Empty(t, resp.CommodityTypes)
}

func TestGetConfirmation(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := executeRequest(r, http.MethodGet, "/v1/bookings/ABC123/confirmation", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ConfirmationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Subject to space availability"}, resp.CarrierClauses)
}

func TestHistory(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := executeRequest(r, http.MethodGet, "/v1/bookings/ABC123/history", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.ListResponse[BookingSummaryResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

func TestListBookingsSetsPageHeaders(t *testing.T) {
	svc := &fakeService{
		list:  []*booking.Booking{{Reference: "A"}, {Reference: "B"}},
		total: 5,
	}
	r := newTestRouter(svc)

	w := executeRequest(r, http.MethodGet, "/v1/bookings?bookingStatus=RECEIVED&sort=carrierBookingRequestReference:ASC", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, booking.StatusReceived, svc.lastQuery.Status)
	assert.Equal(t, 2, svc.lastQuery.Cursor.PageSize)
	assert.Equal(t, []pagination.SortField{{Field: "carrierBookingRequestReference", Direction: pagination.Asc}}, svc.lastQuery.Cursor.Sort)

	current := w.Header().Get(response.HeaderCurrentPage)
	next := w.Header().Get(response.HeaderNextPage)
	last := w.Header().Get(response.HeaderLastPage)
	require.NotEmpty(t, current)
	require.NotEmpty(t, next)
	require.NotEmpty(t, last)

	raw, err := base64.RawURLEncoding.DecodeString(next)
	require.NoError(t, err)
	assert.Equal(t, "page=1&size=2&sort=carrierBookingRequestReference: ASC", string(raw))

	// Following the cursor keeps size and sort.
	w = executeRequest(r, http.MethodGet, "/v1/bookings?cursor="+last, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, svc.lastQuery.Cursor.PageIndex)
	assert.Empty(t, w.Header().Get(response.HeaderNextPage))
}

func TestListBookingsRejectsBadCursor(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := executeRequest(r, http.MethodGet, "/v1/bookings?cursor=bm9wZQ", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Malformed cursor")
}
