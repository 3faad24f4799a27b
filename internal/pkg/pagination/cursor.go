package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedCursor is returned when a cursor token cannot be decoded.
var ErrMalformedCursor = errors.New("Malformed cursor")

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// SortField is one ordering term of a listing.
type SortField struct {
	Field     string
	Direction Direction
}

func (s SortField) String() string {
	return s.Field + ": " + string(s.Direction)
}

// Cursor is the decoded paging state carried between list requests.
type Cursor struct {
	PageIndex int
	PageSize  int
	Sort      []SortField
}

// Offset returns the number of rows to skip for this page.
func (c Cursor) Offset() int {
	return c.PageIndex * c.PageSize
}

// Encode serializes a cursor into an opaque URL-safe token.
func Encode(c Cursor) string {
	var b strings.Builder
	b.WriteString("page=")
	b.WriteString(strconv.Itoa(c.PageIndex))
	b.WriteString("&size=")
	b.WriteString(strconv.Itoa(c.PageSize))
	if len(c.Sort) > 0 {
		terms := make([]string, len(c.Sort))
		for i, s := range c.Sort {
			terms[i] = s.String()
		}
		b.WriteString("&sort=")
		b.WriteString(strings.Join(terms, ","))
	}
	return base64.RawURLEncoding.EncodeToString([]byte(b.String()))
}

// Decode parses a token produced by Encode.
func Decode(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return Cursor{}, ErrMalformedCursor
	}

	params := map[string]string{}
	for _, part := range strings.Split(string(raw), "&") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		params[key] = value
	}

	pageStr, ok := params["page"]
	if !ok {
		return Cursor{}, ErrMalformedCursor
	}
	sizeStr, ok := params["size"]
	if !ok {
		return Cursor{}, ErrMalformedCursor
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		return Cursor{}, ErrMalformedCursor
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		return Cursor{}, ErrMalformedCursor
	}
	// The end of the page must fit in an int.
	if page > math.MaxInt/size-1 {
		return Cursor{}, ErrMalformedCursor
	}

	c := Cursor{PageIndex: page, PageSize: size}
	if sortStr, ok := params["sort"]; ok && sortStr != "" {
		c.Sort, err = ParseSort(strings.Split(sortStr, ","), nil)
		if err != nil {
			return Cursor{}, ErrMalformedCursor
		}
	}
	return c, nil
}

// ParseSort turns "field" or "field: DIR" entries into sort fields.
// Entries without a direction sort descending. An empty input returns def unchanged.
func ParseSort(raw []string, def []SortField) ([]SortField, error) {
	if len(raw) == 0 {
		return def, nil
	}

	fields := make([]SortField, 0, len(raw))
	for _, entry := range raw {
		name, dir, hasDir := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty sort field in %q", entry)
		}

		direction := Desc
		if hasDir {
			switch Direction(strings.ToUpper(strings.TrimSpace(dir))) {
			case Asc:
				direction = Asc
			case Desc:
				direction = Desc
			default:
				return nil, fmt.Errorf("invalid sort direction in %q", entry)
			}
		}
		fields = append(fields, SortField{Field: name, Direction: direction})
	}
	return fields, nil
}
