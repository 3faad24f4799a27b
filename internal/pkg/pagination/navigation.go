package pagination

import (
	"errors"
	"fmt"
)

// Headers holds the navigation tokens for one page. Next and Last are empty when absent.
type Headers struct {
	Current string
	Next    string
	Last    string
}

// NavigationHeaders derives the tokens for the current, next and last pages.
func NavigationHeaders(c Cursor, total int) Headers {
	h := Headers{Current: Encode(c)}
	if c.PageSize < 1 {
		return h
	}

	if total > 0 && c.PageIndex < (total-1)/c.PageSize {
		h.Next = Encode(Cursor{PageIndex: c.PageIndex + 1, PageSize: c.PageSize, Sort: c.Sort})
	}

	lastIndex := (total - 1) / c.PageSize
	if total > c.PageSize && c.PageIndex != lastIndex {
		h.Last = Encode(Cursor{PageIndex: lastIndex, PageSize: c.PageSize, Sort: c.Sort})
	}
	return h
}

// Options configures how list requests are turned into cursors.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	DefaultSort     []SortField
}

// FromRequest builds the cursor for a list request. A non-empty token takes
// precedence over limit and sort.
func FromRequest(token string, limit int, rawSort []string, opts Options) (Cursor, error) {
	if token != "" {
		c, err := Decode(token)
		if err != nil {
			return Cursor{}, err
		}
		if opts.MaxPageSize > 0 && c.PageSize > opts.MaxPageSize {
			return Cursor{}, ErrMalformedCursor
		}
		if len(c.Sort) == 0 {
			c.Sort = opts.DefaultSort
		}
		return c, nil
	}

	size := limit
	if size < 1 {
		size = opts.DefaultPageSize
	}
	if opts.MaxPageSize > 0 && size > opts.MaxPageSize {
		return Cursor{}, fmt.Errorf("limit must not exceed %d", opts.MaxPageSize)
	}
	if size < 1 {
		return Cursor{}, errors.New("limit must be positive")
	}

	sort, err := ParseSort(rawSort, opts.DefaultSort)
	if err != nil {
		return Cursor{}, err
	}
	return Cursor{PageIndex: 0, PageSize: size, Sort: sort}, nil
}
