package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
)

func behavioralPopulation() ([]model.CustomerProfile, []int) {
	profiles := []model.CustomerProfile{
		// Cluster 0: chronically late payers.
		{PayerID: "p01", PurchaseFrequency: 1, AvgTicket: 10, AvgDaysLate: 30},
		{PayerID: "p02", PurchaseFrequency: 1, AvgTicket: 10, AvgDaysLate: 30},
		// Cluster 1: one big-ticket customer.
		{PayerID: "p03", PurchaseFrequency: 1, AvgTicket: 1000, AvgDaysLate: 0},
		// Cluster 2: frequent buyers.
		{PayerID: "p04", PurchaseFrequency: 50, AvgTicket: 10, AvgDaysLate: 0},
		{PayerID: "p05", PurchaseFrequency: 50, AvgTicket: 10, AvgDaysLate: 0},
		// Cluster 3: everyone else.
		{PayerID: "p06", PurchaseFrequency: 1, AvgTicket: 10, AvgDaysLate: 0},
		{PayerID: "p07", PurchaseFrequency: 1, AvgTicket: 10, AvgDaysLate: 0},
		{PayerID: "p08", PurchaseFrequency: 1, AvgTicket: 10, AvgDaysLate: 0},
		{PayerID: "p09", PurchaseFrequency: 1, AvgTicket: 10, AvgDaysLate: 0},
		{PayerID: "p10", PurchaseFrequency: 1, AvgTicket: 10, AvgDaysLate: 0},
	}
	clusterIDs := []int{0, 0, 1, 2, 2, 3, 3, 3, 3, 3}
	return profiles, clusterIDs
}

func TestLabelClusters(t *testing.T) {
	t.Run("names all four profiles by priority", func(t *testing.T) {
		profiles, ids := behavioralPopulation()

		labels := LabelClusters(profiles, ids, 4)

		require.Len(t, labels, 4)
		assert.Equal(t, LabelDelinquent, labels[0])
		assert.Equal(t, LabelVIP, labels[1])
		assert.Equal(t, LabelLoyal, labels[2])
		assert.Equal(t, LabelStandard, labels[3])
	})

	t.Run("delinquency outranks ticket size", func(t *testing.T) {
		profiles, ids := behavioralPopulation()
		// Make the VIP cluster also chronically late: rule 1 must win.
		profiles[2].AvgDaysLate = 60

		labels := LabelClusters(profiles, ids, 4)

		assert.Equal(t, LabelDelinquent, labels[1])
	})

	t.Run("empty partition falls back to the standard label", func(t *testing.T) {
		profiles, ids := behavioralPopulation()
		for i := range ids {
			if ids[i] == 1 {
				ids[i] = 3
			}
		}

		labels := LabelClusters(profiles, ids, 4)

		assert.Equal(t, LabelStandard, labels[1])
	})
}

func TestProfileText(t *testing.T) {
	assert.Equal(t, "VIP (high ticket)", ProfileText(LabelVIP, false))
	assert.Equal(t, "VIP (high ticket) [ANOMALY ALERT]", ProfileText(LabelVIP, true))
}
