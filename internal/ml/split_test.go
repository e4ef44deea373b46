package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitHoldout(t *testing.T) {
	x := make([][]float64, 10)
	y := make([]int, 10)
	for i := range x {
		x[i] = []float64{float64(i)}
		y[i] = i % 2
	}

	t.Run("carves the requested fraction", func(t *testing.T) {
		trainX, trainY, testX, testY := SplitHoldout(x, y, 0.3, 42)

		assert.Len(t, testX, 3)
		assert.Len(t, trainX, 7)
		assert.Len(t, testY, 3)
		assert.Len(t, trainY, 7)
	})

	t.Run("same seed reproduces the same split", func(t *testing.T) {
		aX, aY, _, _ := SplitHoldout(x, y, 0.3, 42)
		bX, bY, _, _ := SplitHoldout(x, y, 0.3, 42)

		require.Equal(t, aX, bX)
		require.Equal(t, aY, bY)
	})

	t.Run("labels stay aligned with rows", func(t *testing.T) {
		trainX, trainY, testX, testY := SplitHoldout(x, y, 0.3, 7)

		for i, row := range trainX {
			assert.Equal(t, int(row[0])%2, trainY[i])
		}
		for i, row := range testX {
			assert.Equal(t, int(row[0])%2, testY[i])
		}
	})
}
