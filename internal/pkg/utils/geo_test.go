package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greencity/place-service/internal/pkg/utils"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Zero(t, utils.HaversineDistance(50.45, 30.52, 50.45, 30.52))
	})

	t.Run("Kyiv to Lviv", func(t *testing.T) {
		// Great-circle distance is about 469 km.
		d := utils.HaversineDistance(50.4501, 30.5234, 49.8397, 24.0297)
		assert.InDelta(t, 469000, d, 2000)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := utils.HaversineDistance(50.45, 30.52, 49.84, 24.03)
		d2 := utils.HaversineDistance(49.84, 24.03, 50.45, 30.52)
		assert.InDelta(t, d1, d2, 0.0001)
	})

	t.Run("across the antimeridian", func(t *testing.T) {
		// Points 0.2 degrees of longitude apart on the equator,
		// straddling +-180. Roughly 22.2 km, never half the globe.
		d := utils.HaversineDistance(0, 179.9, 0, -179.9)
		assert.InDelta(t, 22240, d, 100)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, utils.ValidateCoordinates(0, 0))
	assert.True(t, utils.ValidateCoordinates(90, 180))
	assert.True(t, utils.ValidateCoordinates(-90, -180))
	assert.False(t, utils.ValidateCoordinates(90.01, 0))
	assert.False(t, utils.ValidateCoordinates(0, -180.01))
}
