package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metro-parking/internal/domain"
	"github.com/metro-parking/internal/geometry"
)

func pt(lon, lat float64) domain.Coordinate {
	return domain.Coordinate{Lon: lon, Lat: lat}
}

func TestCleanRing(t *testing.T) {
	t.Run("removes consecutive duplicate points", func(t *testing.T) {
		raw := []domain.Coordinate{
			pt(0, 0), pt(0, 0), pt(1, 0), pt(1, 1), pt(1, 1), pt(1, 1), pt(0, 1),
		}

		cleaned := geometry.CleanRing(raw)

		assert.Equal(t, []domain.Coordinate{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1)}, cleaned)
	})

	t.Run("drops redundant closing point", func(t *testing.T) {
		raw := []domain.Coordinate{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1), pt(0, 0)}

		cleaned := geometry.CleanRing(raw)

		assert.Len(t, cleaned, 4)
		assert.Equal(t, pt(0, 0), cleaned[0])
		assert.Equal(t, pt(0, 1), cleaned[3])
	})

	t.Run("keeps already clean ring unchanged", func(t *testing.T) {
		raw := []domain.Coordinate{pt(0, 0), pt(1, 0), pt(1, 1)}

		cleaned := geometry.CleanRing(raw)

		assert.Equal(t, raw, cleaned)
	})

	t.Run("rejects rings under 3 points", func(t *testing.T) {
		assert.Nil(t, geometry.CleanRing(nil))
		assert.Nil(t, geometry.CleanRing([]domain.Coordinate{pt(0, 0)}))
		assert.Nil(t, geometry.CleanRing([]domain.Coordinate{pt(0, 0), pt(1, 1)}))

		// Degenerate after cleaning: two distinct points plus closure.
		raw := []domain.Coordinate{pt(0, 0), pt(0, 0), pt(1, 1), pt(1, 1)}
		assert.Nil(t, geometry.CleanRing(raw))
	})
}

func TestValidateRing(t *testing.T) {
	t.Run("accepts simple square", func(t *testing.T) {
		ring := []domain.Coordinate{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1)}
		assert.True(t, geometry.ValidateRing(ring))
	})

	t.Run("accepts simple concave ring", func(t *testing.T) {
		ring := []domain.Coordinate{
			pt(0, 0), pt(4, 0), pt(4, 4), pt(2, 1), pt(0, 4),
		}
		assert.True(t, geometry.ValidateRing(ring))
	})

	t.Run("rejects bowtie self-intersection", func(t *testing.T) {
		ring := []domain.Coordinate{pt(0, 0), pt(2, 2), pt(2, 0), pt(0, 2)}
		assert.False(t, geometry.ValidateRing(ring))
	})

	t.Run("rejects ring crossing its own edge", func(t *testing.T) {
		ring := []domain.Coordinate{
			pt(0, 0), pt(4, 0), pt(4, 2), pt(-1, 1), pt(0, 3),
		}
		assert.False(t, geometry.ValidateRing(ring))
	})

	t.Run("rejects rings under 3 points", func(t *testing.T) {
		assert.False(t, geometry.ValidateRing([]domain.Coordinate{pt(0, 0), pt(1, 1)}))
	})
}
