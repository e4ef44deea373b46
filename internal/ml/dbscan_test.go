package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSCAN(t *testing.T) {
	t.Run("flags the isolated point as noise", func(t *testing.T) {
		points := [][]float64{
			{0, 0}, {0.1, 0}, {0, 0.1}, {0.1, 0.1}, {0.05, 0.05},
			{50, 50},
		}

		labels := DBSCAN(points, 1.0, 3)

		require.Len(t, labels, 6)
		for i := 0; i < 5; i++ {
			assert.Equal(t, 0, labels[i], "dense point %d should join cluster 0", i)
		}
		assert.Equal(t, NoiseLabel, labels[5])
	})

	t.Run("two separated dense groups get distinct labels", func(t *testing.T) {
		points := [][]float64{
			{0, 0}, {0.1, 0}, {0, 0.1},
			{10, 10}, {10.1, 10}, {10, 10.1},
		}

		labels := DBSCAN(points, 1.0, 3)

		assert.Equal(t, labels[0], labels[1])
		assert.Equal(t, labels[0], labels[2])
		assert.Equal(t, labels[3], labels[4])
		assert.Equal(t, labels[3], labels[5])
		assert.NotEqual(t, labels[0], labels[3])
	})

	t.Run("sparse data is all noise", func(t *testing.T) {
		points := [][]float64{{0, 0}, {10, 0}, {20, 0}}

		labels := DBSCAN(points, 1.0, 3)

		for _, l := range labels {
			assert.Equal(t, NoiseLabel, l)
		}
	})
}
