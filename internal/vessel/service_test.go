package vessel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	vessels []*Vessel
}

func (r *stubRepository) GetByID(ctx context.Context, id string) (*Vessel, error) {
	for _, v := range r.vessels {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, ErrNotFound
}

func (r *stubRepository) GetByIMO(ctx context.Context, imo string) (*Vessel, error) {
	for _, v := range r.vessels {
		if v.IMONumber == imo {
			return v, nil
		}
	}
	return nil, ErrNotFound
}

func (r *stubRepository) ListByName(ctx context.Context, name string) ([]*Vessel, error) {
	var out []*Vessel
	for _, v := range r.vessels {
		if v.Name == name {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubRepository) List(ctx context.Context, q ListQuery) ([]*Vessel, int, error) {
	return r.vessels, len(r.vessels), nil
}

func TestFindByIMO(t *testing.T) {
	svc := NewService(&stubRepository{vessels: []*Vessel{{ID: "v1", IMONumber: "9321483", Name: "Atlantic Star"}}})

	v, err := svc.FindByIMO(context.Background(), " 9321483 ")
	require.NoError(t, err)
	assert.Equal(t, "Atlantic Star", v.Name)

	_, err = svc.FindByIMO(context.Background(), "1234567")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByNameReturnsEveryMatch(t *testing.T) {
	svc := NewService(&stubRepository{vessels: []*Vessel{
		{ID: "v2", IMONumber: "9811000", Name: "Ever Given"},
		{ID: "v3", IMONumber: "9811001", Name: "Ever Given"},
		{ID: "v1", IMONumber: "9321483", Name: "Atlantic Star"},
	}})

	matches, err := svc.FindByName(context.Background(), "Ever Given")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = svc.FindByName(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
