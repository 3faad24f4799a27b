package request

import (
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
)

// ByReferenceRequest is a common struct for endpoints that address a booking by its reference.
type ByReferenceRequest struct {
	Reference string `uri:"reference" binding:"required,max=100"`
}

// ListParams carries the paging query parameters shared by list endpoints.
type ListParams struct {
	Cursor string   `form:"cursor" binding:"omitempty,max=1024"`
	Limit  int      `form:"limit" binding:"omitempty,min=1"`
	Sort   []string `form:"sort"`
}

// ToCursor resolves the paging state for this request.
func (p *ListParams) ToCursor(opts pagination.Options) (pagination.Cursor, error) {
	return pagination.FromRequest(p.Cursor, p.Limit, p.Sort, opts)
}
