package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/freight-booking-backend/internal/vessel"
)

type VesselHandler struct {
	service vessel.Service
	paging  pagination.Options
}

func NewHandler(service vessel.Service, paging pagination.Options) *VesselHandler {
	paging.DefaultSort = vessel.DefaultSort
	return &VesselHandler{service: service, paging: paging}
}

// List returns one page of the vessel directory.
func (h *VesselHandler) List(c *gin.Context) {
	var req ListVesselsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	cursor, err := req.ToCursor(h.paging)
	if err != nil {
		response.Error(c, apperror.InvalidInput("%s", err.Error()))
		return
	}

	vessels, total, err := h.service.List(c.Request.Context(), vessel.ListQuery{
		Name:   req.Name,
		Flag:   req.Flag,
		Cursor: cursor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]VesselResponse, len(vessels))
	for i, v := range vessels {
		items[i] = NewVesselResponse(v)
	}

	response.SetPageHeaders(c, cursor, total)
	c.JSON(http.StatusOK, response.NewListResponse(items, total))
}

// Get looks a vessel up by IMO number.
func (h *VesselHandler) Get(c *gin.Context) {
	v, err := h.service.FindByIMO(c.Request.Context(), c.Param("imo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewVesselResponse(v))
}
