package ml

import (
	"fmt"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/floats"
)

// TrainKMeans partitions standardized points into k clusters and returns the
// fitted centroids. Only the centroids are persisted; assignment is always a
// nearest-centroid lookup so loaded and freshly trained models behave alike.
func TrainKMeans(points [][]float64, k int) ([][]float64, error) {
	obs := make(clusters.Observations, 0, len(points))
	for _, p := range points {
		obs = append(obs, clusters.Coordinates(p))
	}

	km := kmeans.New()
	cc, err := km.Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("kmeans partition: %w", err)
	}

	centroids := make([][]float64, 0, len(cc))
	for _, c := range cc {
		centroid := make([]float64, len(c.Center))
		copy(centroid, c.Center)
		centroids = append(centroids, centroid)
	}
	return centroids, nil
}

// AssignNearest returns the index of the centroid closest to point.
func AssignNearest(point []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		if d := floats.Distance(point, c, 2); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
