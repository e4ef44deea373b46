package ml

import (
	randomforest "github.com/malaschitz/randomForest"
)

// TrainForest fits a tree ensemble on standardized features. Defaults are the
// minority class, so class-1 rows are oversampled minorityWeight times before
// fitting to rebalance the vote.
func TrainForest(x [][]float64, y []int, trees, minorityWeight int) *randomforest.Forest {
	bx, by := oversampleMinority(x, y, minorityWeight)

	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: bx, Class: by}
	forest.Train(trees)
	return forest
}

// ProbDefault returns the ensemble's probability estimate for the default
// class (the second vote column).
func ProbDefault(f *randomforest.Forest, x []float64) float64 {
	votes := f.Vote(x)
	if len(votes) < 2 {
		return 0
	}
	return votes[1]
}

// Accuracy scores argmax predictions against held-out labels.
func Accuracy(f *randomforest.Forest, x [][]float64, y []int) float64 {
	if len(x) == 0 {
		return 0
	}
	correct := 0
	for i, row := range x {
		votes := f.Vote(row)
		pred := 0
		for c, v := range votes {
			if v > votes[pred] {
				pred = c
			}
		}
		if pred == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(x))
}

func oversampleMinority(x [][]float64, y []int, weight int) ([][]float64, []int) {
	if weight <= 1 {
		return x, y
	}
	bx := make([][]float64, 0, len(x))
	by := make([]int, 0, len(y))
	for i := range x {
		bx = append(bx, x[i])
		by = append(by, y[i])
		if y[i] == 1 {
			for n := 1; n < weight; n++ {
				bx = append(bx, x[i])
				by = append(by, y[i])
			}
		}
	}
	return bx, by
}
