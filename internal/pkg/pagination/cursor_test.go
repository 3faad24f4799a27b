package pagination

import (
	"encoding/base64"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := Cursor{PageIndex: 2, PageSize: 10, Sort: []SortField{{Field: "foo", Direction: Desc}}}

	token := Encode(in)
	out, err := Decode(token)

	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeFormat(t *testing.T) {
	token := Encode(Cursor{PageIndex: 1, PageSize: 5, Sort: []SortField{
		{Field: "requestedDateTime", Direction: Asc},
		{Field: "reference", Direction: Desc},
	}})

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Equal(t, "page=1&size=5&sort=requestedDateTime: ASC,reference: DESC", string(raw))
}

func TestDecodeWithoutSort(t *testing.T) {
	token := base64.RawURLEncoding.EncodeToString([]byte("page=0&size=20"))

	c, err := Decode(token)

	require.NoError(t, err)
	assert.Equal(t, 0, c.PageIndex)
	assert.Equal(t, 20, c.PageSize)
	assert.Empty(t, c.Sort)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"missing size":    base64.RawURLEncoding.EncodeToString([]byte("page=2&sort=foo: DESC")),
		"missing page":    base64.RawURLEncoding.EncodeToString([]byte("size=10")),
		"non integer":     base64.RawURLEncoding.EncodeToString([]byte("page=two&size=10")),
		"zero size":       base64.RawURLEncoding.EncodeToString([]byte("page=1&size=0")),
		"not base64":      "%%%",
		"bad sort clause": base64.RawURLEncoding.EncodeToString([]byte("page=1&size=2&sort=foo: SIDEWAYS")),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedCursor)
			assert.Equal(t, "Malformed cursor", err.Error())
		})
	}
}

func TestParseSort(t *testing.T) {
	def := []SortField{{Field: "updatedDateTime", Direction: Asc}}

	t.Run("nil uses default", func(t *testing.T) {
		got, err := ParseSort(nil, def)
		require.NoError(t, err)
		assert.Equal(t, def, got)
	})

	t.Run("empty uses default", func(t *testing.T) {
		got, err := ParseSort([]string{}, def)
		require.NoError(t, err)
		assert.Equal(t, def, got)
	})

	t.Run("missing direction defaults to descending, order preserved", func(t *testing.T) {
		got, err := ParseSort([]string{"b", "a: ASC", "c:desc"}, def)
		require.NoError(t, err)
		assert.Equal(t, []SortField{
			{Field: "b", Direction: Desc},
			{Field: "a", Direction: Asc},
			{Field: "c", Direction: Desc},
		}, got)
	})

	t.Run("unknown direction", func(t *testing.T) {
		_, err := ParseSort([]string{"a: UP"}, def)
		assert.Error(t, err)
	})
}

func TestDecodeRejectsOverflowingPage(t *testing.T) {
	_, err := Decode(Encode(Cursor{PageIndex: math.MaxInt, PageSize: 10}))
	assert.ErrorIs(t, err, ErrMalformedCursor)

	_, err = Decode(Encode(Cursor{PageIndex: math.MaxInt/10 - 1, PageSize: 10}))
	require.NoError(t, err, "largest page whose end fits in an int")

	c, err := Decode(Encode(Cursor{PageIndex: 4, PageSize: 25}))
	require.NoError(t, err)
	assert.Equal(t, 100, c.Offset())
}
