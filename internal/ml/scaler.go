package ml

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers features to zero mean and unit variance. A scaler is
// always persisted together with the model it was fitted for; transforming
// with a mismatched scaler is undefined, so Transform checks dimensions.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// FitScaler computes per-column mean and standard deviation over x.
// Constant columns get a scale of 1 so they pass through unchanged.
func FitScaler(x [][]float64) *StandardScaler {
	if len(x) == 0 {
		return &StandardScaler{}
	}
	dims := len(x[0])
	s := &StandardScaler{
		Mean:  make([]float64, dims),
		Scale: make([]float64, dims),
	}

	col := make([]float64, len(x))
	for j := 0; j < dims; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		s.Mean[j] = stat.Mean(col, nil)
		sd := stat.StdDev(col, nil)
		if sd == 0 {
			sd = 1
		}
		s.Scale[j] = sd
	}
	return s
}

// Transform standardizes x using the fitted parameters.
func (s *StandardScaler) Transform(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("scaler fitted for %d features, got %d", len(s.Mean), len(row))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// Dims returns the number of features the scaler was fitted on.
func (s *StandardScaler) Dims() int { return len(s.Mean) }
