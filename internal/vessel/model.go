package vessel

import (
	"time"

	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
)

var (
	ErrNotFound = apperror.NotFound("vessel not found")
)

// Vessel is an entry of the vessel directory. The booking service only reads it.
type Vessel struct {
	ID                  string
	IMONumber           string
	Name                string
	Flag                string
	CallSign            string
	OperatorCarrierCode string
	CreatedAt           time.Time
}

// ListQuery defines parameters for listing vessels.
type ListQuery struct {
	Name   string // Case-insensitive substring
	Flag   string
	Cursor pagination.Cursor
}

// SortColumns lists the fields vessels can be sorted by.
var SortColumns = map[string]string{
	"name":      "name",
	"imoNumber": "imo_number",
	"createdAt": "created_at",
}

// DefaultSort orders vessels alphabetically.
var DefaultSort = []pagination.SortField{{Field: "name", Direction: pagination.Asc}}
