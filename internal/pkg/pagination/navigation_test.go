package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOrFail(t *testing.T, token string) Cursor {
	t.Helper()
	c, err := Decode(token)
	require.NoError(t, err)
	return c
}

func TestNavigationHeadersFirstPage(t *testing.T) {
	sort := []SortField{{Field: "foo", Direction: Desc}}
	h := NavigationHeaders(Cursor{PageIndex: 0, PageSize: 10, Sort: sort}, 100)

	require.NotEmpty(t, h.Current)
	require.NotEmpty(t, h.Next)
	require.NotEmpty(t, h.Last)

	assert.Equal(t, 0, decodeOrFail(t, h.Current).PageIndex)

	next := decodeOrFail(t, h.Next)
	assert.Equal(t, 1, next.PageIndex)
	assert.Equal(t, 10, next.PageSize)
	assert.Equal(t, sort, next.Sort)

	last := decodeOrFail(t, h.Last)
	assert.Equal(t, 9, last.PageIndex)
}

func TestNavigationHeadersFinalPage(t *testing.T) {
	h := NavigationHeaders(Cursor{PageIndex: 19, PageSize: 5}, 100)

	assert.NotEmpty(t, h.Current)
	assert.Empty(t, h.Next)
	assert.Empty(t, h.Last)
}

func TestNavigationHeadersSinglePage(t *testing.T) {
	for _, total := range []int{0, 3, 10} {
		h := NavigationHeaders(Cursor{PageIndex: 0, PageSize: 10}, total)
		assert.NotEmpty(t, h.Current)
		assert.Empty(t, h.Next, "total %d", total)
		assert.Empty(t, h.Last, "total %d", total)
	}
}

func TestNavigationHeadersPartialLastPage(t *testing.T) {
	h := NavigationHeaders(Cursor{PageIndex: 1, PageSize: 10}, 25)

	assert.Equal(t, 2, decodeOrFail(t, h.Next).PageIndex)
	assert.Equal(t, 2, decodeOrFail(t, h.Last).PageIndex)
}

func TestFromRequest(t *testing.T) {
	opts := Options{
		DefaultPageSize: 20,
		MaxPageSize:     100,
		DefaultSort:     []SortField{{Field: "requestedDateTime", Direction: Desc}},
	}

	t.Run("defaults", func(t *testing.T) {
		c, err := FromRequest("", 0, nil, opts)
		require.NoError(t, err)
		assert.Equal(t, Cursor{PageIndex: 0, PageSize: 20, Sort: opts.DefaultSort}, c)
	})

	t.Run("limit and sort", func(t *testing.T) {
		c, err := FromRequest("", 5, []string{"reference: ASC"}, opts)
		require.NoError(t, err)
		assert.Equal(t, 5, c.PageSize)
		assert.Equal(t, []SortField{{Field: "reference", Direction: Asc}}, c.Sort)
	})

	t.Run("cursor wins", func(t *testing.T) {
		token := Encode(Cursor{PageIndex: 3, PageSize: 7, Sort: []SortField{{Field: "status", Direction: Asc}}})
		c, err := FromRequest(token, 50, []string{"reference"}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, c.PageIndex)
		assert.Equal(t, 7, c.PageSize)
		assert.Equal(t, "status", c.Sort[0].Field)
	})

	t.Run("limit above maximum", func(t *testing.T) {
		_, err := FromRequest("", 500, nil, opts)
		assert.Error(t, err)
	})

	t.Run("cursor page size above maximum", func(t *testing.T) {
		token := Encode(Cursor{PageIndex: 0, PageSize: 1000000})
		_, err := FromRequest(token, 0, nil, opts)
		assert.ErrorIs(t, err, ErrMalformedCursor)
	})

	t.Run("cursor page size at maximum", func(t *testing.T) {
		c, err := FromRequest(Encode(Cursor{PageIndex: 1, PageSize: 100}), 0, nil, opts)
		require.NoError(t, err)
		assert.Equal(t, 100, c.PageSize)
	})

	t.Run("malformed cursor", func(t *testing.T) {
		_, err := FromRequest("bm9wZQ", 0, nil, opts)
		assert.ErrorIs(t, err, ErrMalformedCursor)
	})
}

func TestNavigationHeadersNextIsDecodable(t *testing.T) {
	h := NavigationHeaders(Cursor{PageIndex: 0, PageSize: 3}, 7)

	next := decodeOrFail(t, h.Next)
	assert.Equal(t, 1, next.PageIndex)
	last := decodeOrFail(t, h.Last)
	assert.Equal(t, 2, last.PageIndex)

	h = NavigationHeaders(Cursor{PageIndex: 2, PageSize: 3}, 7)
	assert.Empty(t, h.Next)
}
