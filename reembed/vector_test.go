package reembed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func vectorMagnitude(v []float32) float64 {
	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	return math.Sqrt(sum)
}

func TestNormalizeVector(t *testing.T) {
	t.Run("scales to unit length", func(t *testing.T) {
		result := NormalizeVector([]float32{3.0, 4.0})
		assert.InDelta(t, 1.0, vectorMagnitude(result), 1e-6)
		assert.InDelta(t, 0.6, result[0], 1e-6)
		assert.InDelta(t, 0.8, result[1], 1e-6)
	})

	t.Run("unit vector is unchanged", func(t *testing.T) {
		result := NormalizeVector([]float32{0.0, 1.0, 0.0})
		assert.InDelta(t, 1.0, vectorMagnitude(result), 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		result := NormalizeVector([]float32{0.0, 0.0, 0.0})
		assert.Equal(t, []float32{0.0, 0.0, 0.0}, result)
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, NormalizeVector(nil))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		input := []float32{2.0, 0.0}
		NormalizeVector(input)
		assert.Equal(t, []float32{2.0, 0.0}, input)
	})
}
