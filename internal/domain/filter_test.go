package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greencity/place-service/internal/domain"
)

func TestMapBoundsValid(t *testing.T) {
	tests := []struct {
		name   string
		bounds domain.MapBounds
		want   bool
	}{
		{
			"ordinary rectangle",
			domain.MapBounds{NorthEastLat: 50.5, NorthEastLng: 30.7, SouthWestLat: 50.3, SouthWestLng: 30.3},
			true,
		},
		{
			"wrapping rectangle is valid",
			domain.MapBounds{NorthEastLat: 10, NorthEastLng: -170, SouthWestLat: -10, SouthWestLng: 170},
			true,
		},
		{
			"inverted latitudes",
			domain.MapBounds{NorthEastLat: 10, NorthEastLng: 30, SouthWestLat: 20, SouthWestLng: 20},
			false,
		},
		{
			"latitude out of range",
			domain.MapBounds{NorthEastLat: 91, NorthEastLng: 30, SouthWestLat: 10, SouthWestLng: 20},
			false,
		},
		{
			"longitude out of range",
			domain.MapBounds{NorthEastLat: 10, NorthEastLng: 181, SouthWestLat: 5, SouthWestLng: 20},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bounds.Valid())
		})
	}
}

func TestMapBoundsLngRanges(t *testing.T) {
	t.Run("plain rectangle yields one range", func(t *testing.T) {
		b := domain.MapBounds{NorthEastLat: 50, NorthEastLng: 31, SouthWestLat: 49, SouthWestLng: 30}
		assert.False(t, b.WrapsAntimeridian())
		assert.Equal(t, [][2]float64{{30, 31}}, b.LngRanges())
	})

	t.Run("wrapping rectangle splits at the antimeridian", func(t *testing.T) {
		b := domain.MapBounds{NorthEastLat: 10, NorthEastLng: -170, SouthWestLat: -10, SouthWestLng: 170}
		assert.True(t, b.WrapsAntimeridian())
		assert.Equal(t, [][2]float64{{170, 180}, {-180, -170}}, b.LngRanges())
	})
}

func TestMapBoundsContains(t *testing.T) {
	t.Run("plain rectangle", func(t *testing.T) {
		b := domain.MapBounds{NorthEastLat: 50.5, NorthEastLng: 30.7, SouthWestLat: 50.3, SouthWestLng: 30.3}
		assert.True(t, b.Contains(50.4, 30.5))
		assert.False(t, b.Contains(50.6, 30.5))
		assert.False(t, b.Contains(50.4, 30.8))
	})

	t.Run("wrapping rectangle includes both sides of the antimeridian", func(t *testing.T) {
		b := domain.MapBounds{NorthEastLat: 10, NorthEastLng: -170, SouthWestLat: -10, SouthWestLng: 170}
		assert.True(t, b.Contains(0, 175), "east of the antimeridian")
		assert.True(t, b.Contains(0, -175), "west of the antimeridian")
		assert.True(t, b.Contains(0, 180))
		assert.True(t, b.Contains(0, -180))
		assert.False(t, b.Contains(0, 0), "outside both ranges")
		assert.False(t, b.Contains(20, 175), "north of the rectangle")
	})
}

func TestPageRequestNormalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := domain.PageRequest{Page: -3, Size: 0, Direction: "sideways"}.Normalize()
		assert.Equal(t, 0, p.Page)
		assert.Equal(t, 20, p.Size)
		assert.Equal(t, domain.SortDesc, p.Direction)
	})

	t.Run("valid values pass through", func(t *testing.T) {
		p := domain.PageRequest{Page: 2, Size: 50, Direction: domain.SortAsc}.Normalize()
		assert.Equal(t, 2, p.Page)
		assert.Equal(t, 50, p.Size)
		assert.Equal(t, domain.SortAsc, p.Direction)
		assert.Equal(t, 100, p.Offset())
	})
}
