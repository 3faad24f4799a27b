package http

import (
	"time"

	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/freight-booking-backend/internal/vessel"
)

// ListVesselsRequest defines query parameters for listing vessels.
type ListVesselsRequest struct {
	request.ListParams
	Name string `form:"name" binding:"omitempty,max=35"`
	Flag string `form:"flag" binding:"omitempty,len=2"`
}

type VesselResponse struct {
	ID                  string    `json:"id"`
	IMONumber           string    `json:"vesselIMONumber,omitempty"`
	Name                string    `json:"vesselName"`
	Flag                string    `json:"vesselFlag,omitempty"`
	CallSign            string    `json:"vesselCallSignNumber,omitempty"`
	OperatorCarrierCode string    `json:"vesselOperatorCarrierCode,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

func NewVesselResponse(v *vessel.Vessel) VesselResponse {
	return VesselResponse{
		ID:                  v.ID,
		IMONumber:           v.IMONumber,
		Name:                v.Name,
		Flag:                v.Flag,
		CallSign:            v.CallSign,
		OperatorCarrierCode: v.OperatorCarrierCode,
		CreatedAt:           v.CreatedAt,
	}
}
