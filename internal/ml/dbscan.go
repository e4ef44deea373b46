package ml

import "gonum.org/v1/gonum/floats"

// NoiseLabel marks points the density scan assigned to no dense
// neighborhood. Customers with this label are flagged anomalous.
const NoiseLabel = -1

// DBSCAN runs a density-based scan over points (euclidean distance) and
// returns a cluster label per point, with NoiseLabel for outliers. The label
// space is independent of the k-means partitions: it only exists to separate
// dense neighborhoods from noise.
func DBSCAN(points [][]float64, eps float64, minPts int) []int {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = NoiseLabel
	}
	visited := make([]bool, len(points))

	next := 0
	for i := range points {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := regionQuery(points, i, eps)
		if len(neighbors) < minPts {
			continue // stays noise unless absorbed by a later core point
		}

		labels[i] = next
		expandCluster(points, labels, visited, neighbors, next, eps, minPts)
		next++
	}
	return labels
}

func expandCluster(points [][]float64, labels []int, visited []bool, seeds []int, cluster int, eps float64, minPts int) {
	for k := 0; k < len(seeds); k++ {
		j := seeds[k]
		if labels[j] == NoiseLabel {
			labels[j] = cluster
		}
		if visited[j] {
			continue
		}
		visited[j] = true

		neighbors := regionQuery(points, j, eps)
		if len(neighbors) >= minPts {
			seeds = append(seeds, neighbors...)
		}
	}
}

func regionQuery(points [][]float64, i int, eps float64) []int {
	var neighbors []int
	for j := range points {
		if floats.Distance(points[i], points[j], 2) <= eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}
