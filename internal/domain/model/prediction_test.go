package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
)

func TestDedupePredictions(t *testing.T) {
	t.Run("last occurrence wins, first occurrence keeps the slot", func(t *testing.T) {
		preds := []model.RiskPrediction{
			{InvoiceID: "a", Probability: 0.10},
			{InvoiceID: "b", Probability: 0.20},
			{InvoiceID: "a", Probability: 0.90},
			{InvoiceID: "c", Probability: 0.30},
		}

		out := model.DedupePredictions(preds)

		assert.Equal(t, []model.RiskPrediction{
			{InvoiceID: "a", Probability: 0.90},
			{InvoiceID: "b", Probability: 0.20},
			{InvoiceID: "c", Probability: 0.30},
		}, out)
	})

	t.Run("no duplicates passes through untouched", func(t *testing.T) {
		preds := []model.RiskPrediction{
			{InvoiceID: "a"},
			{InvoiceID: "b"},
		}
		assert.Equal(t, preds, model.DedupePredictions(preds))
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, model.DedupePredictions(nil))
	})
}
