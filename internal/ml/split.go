package ml

import "math/rand"

// SplitHoldout shuffles row indices with the given seed and carves off
// fraction of the rows as a held-out set. The same seed and input always
// produce the same split.
func SplitHoldout(x [][]float64, y []int, fraction float64, seed int64) (trainX [][]float64, trainY []int, testX [][]float64, testY []int) {
	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	nTest := int(float64(n) * fraction)
	for k, i := range idx {
		if k < nTest {
			testX = append(testX, x[i])
			testY = append(testY, y[i])
		} else {
			trainX = append(trainX, x[i])
			trainY = append(trainY, y[i])
		}
	}
	return trainX, trainY, testX, testY
}
