package response

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
)

const (
	HeaderCurrentPage = "Current-Page"
	HeaderNextPage    = "Next-Page"
	HeaderLastPage    = "Last-Page"
)

// ListResponse is the standard wrapper for list endpoints.
// Paging state travels in the Current-Page, Next-Page and Last-Page headers.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse is a helper to quickly create a response
func NewListResponse[T any](items []T, total int) ListResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	return ListResponse[T]{
		Items: items,
		Total: total,
	}
}

// SetPageHeaders writes the navigation tokens for the given page.
func SetPageHeaders(c *gin.Context, cursor pagination.Cursor, total int) {
	h := pagination.NavigationHeaders(cursor, total)
	c.Header(HeaderCurrentPage, h.Current)
	if h.Next != "" {
		c.Header(HeaderNextPage, h.Next)
	}
	if h.Last != "" {
		c.Header(HeaderLastPage, h.Last)
	}
}
