package service

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Cluster rules – behavioral profile naming and anomaly suffix
// ---------------------------------------------------------------------------

const (
	// Population quantiles the cluster means are compared against.
	delinquentDaysLateQuantile = 0.80
	vipTicketQuantile          = 0.90
	loyalFrequencyQuantile     = 0.70

	// AnomalySuffix is appended to the persisted profile text for customers
	// the density detector left outside any dense neighborhood.
	AnomalySuffix = " [ANOMALY ALERT]"
)

// Profile labels, in rule priority order.
const (
	LabelDelinquent = "Delinquent profile"
	LabelVIP        = "VIP (high ticket)"
	LabelLoyal      = "Recurring/loyal customer"
	LabelStandard   = "Standard/sporadic customer"
)

// LabelClusters names each of the k partitions by comparing its feature means
// against quantiles of the whole customer population. Rules are evaluated in
// fixed priority order; the first match wins:
//
//	mean days-late  > p80 -> Delinquent profile
//	mean ticket     > p90 -> VIP (high ticket)
//	mean frequency  > p70 -> Recurring/loyal customer
//	otherwise             -> Standard/sporadic customer
func LabelClusters(profiles []model.CustomerProfile, clusterIDs []int, k int) map[int]string {
	daysLate := make([]float64, len(profiles))
	tickets := make([]float64, len(profiles))
	freqs := make([]float64, len(profiles))
	for i, p := range profiles {
		daysLate[i] = p.AvgDaysLate
		tickets[i] = p.AvgTicket
		freqs[i] = p.PurchaseFrequency
	}

	delinquentCut := quantile(daysLate, delinquentDaysLateQuantile)
	vipCut := quantile(tickets, vipTicketQuantile)
	loyalCut := quantile(freqs, loyalFrequencyQuantile)

	type sums struct {
		daysLate, ticket, freq float64
		n                      int
	}
	byCluster := make([]sums, k)
	for i, p := range profiles {
		cid := clusterIDs[i]
		if cid < 0 || cid >= k {
			continue
		}
		byCluster[cid].daysLate += p.AvgDaysLate
		byCluster[cid].ticket += p.AvgTicket
		byCluster[cid].freq += p.PurchaseFrequency
		byCluster[cid].n++
	}

	labels := make(map[int]string, k)
	for cid := 0; cid < k; cid++ {
		s := byCluster[cid]
		if s.n == 0 {
			labels[cid] = LabelStandard
			continue
		}
		n := float64(s.n)
		switch {
		case s.daysLate/n > delinquentCut:
			labels[cid] = LabelDelinquent
		case s.ticket/n > vipCut:
			labels[cid] = LabelVIP
		case s.freq/n > loyalCut:
			labels[cid] = LabelLoyal
		default:
			labels[cid] = LabelStandard
		}
	}
	return labels
}

// ProfileText renders the persisted profile string, appending the anomaly
// alert when the customer was flagged by the density detector.
func ProfileText(label string, anomalous bool) string {
	if anomalous {
		return label + AnomalySuffix
	}
	return label
}

func quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
