package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/freight-booking-backend/internal/booking"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/response"
)

type BookingHandler struct {
	service booking.Service
	paging  pagination.Options
}

func NewHandler(service booking.Service, paging pagination.Options) *BookingHandler {
	paging.DefaultSort = booking.DefaultSort
	return &BookingHandler{service: service, paging: paging}
}

func (h *BookingHandler) bindBody(c *gin.Context) (booking.Request, bool) {
	var body BookingRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return booking.Request{}, false
	}
	req, err := body.ToRequest()
	if err != nil {
		response.BadRequest(c, err)
		return booking.Request{}, false
	}
	return req, true
}

func (h *BookingHandler) Create(c *gin.Context) {
	req, ok := h.bindBody(c)
	if !ok {
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingSummaryResponse(b))
}

func (h *BookingHandler) Update(c *gin.Context) {
	var uri request.ByReferenceRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}
	req, ok := h.bindBody(c)
	if !ok {
		return
	}

	b, err := h.service.Update(c.Request.Context(), uri.Reference, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingSummaryResponse(b))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var uri request.ByReferenceRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}
	var body CancelBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), uri.Reference, booking.CancelRequest{Reason: body.Reason})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingSummaryResponse(b))
}

func (h *BookingHandler) Get(c *gin.Context) {
	var uri request.ByReferenceRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	agg, err := h.service.Get(c.Request.Context(), uri.Reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(agg))
}

// History lists every revision of a booking, newest first.
func (h *BookingHandler) History(c *gin.Context) {
	var uri request.ByReferenceRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	revisions, err := h.service.History(c.Request.Context(), uri.Reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingSummaryResponse, len(revisions))
	for i, b := range revisions {
		items[i] = NewBookingSummaryResponse(b)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items, len(items)))
}

func (h *BookingHandler) Confirmation(c *gin.Context) {
	var uri request.ByReferenceRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	conf, err := h.service.GetConfirmation(c.Request.Context(), uri.Reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewConfirmationResponse(uri.Reference, conf))
}

// List returns one page of active bookings. Navigation cursors are sent as headers.
func (h *BookingHandler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	cursor, err := req.ToCursor(h.paging)
	if err != nil {
		response.Error(c, apperror.InvalidInput("%s", err.Error()))
		return
	}

	bookings, total, err := h.service.List(c.Request.Context(), booking.ListQuery{
		Status:                   booking.Status(req.Status),
		VesselIMONumber:          req.VesselIMONumber,
		ServiceContractReference: req.ServiceContractReference,
		Cursor:                   cursor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingSummaryResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingSummaryResponse(b)
	}

	response.SetPageHeaders(c, cursor, total)
	c.JSON(http.StatusOK, response.NewListResponse(items, total))
}
