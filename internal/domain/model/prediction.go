package model

// RiskBand is the coarse LOW/MEDIUM/HIGH bucketing of a default probability.
type RiskBand string

const (
	BandLow    RiskBand = "LOW"
	BandMedium RiskBand = "MEDIUM"
	BandHigh   RiskBand = "HIGH"
)

// RiskPrediction is one scored invoice, ready for materialization.
type RiskPrediction struct {
	InvoiceID     string
	Probability   float64 // rounded to 4 decimal places
	Band          RiskBand
	Justification string // at most 250 characters
}

// DedupePredictions removes duplicate invoice IDs, keeping the last computed
// value for each. Output order follows the first occurrence of each ID.
func DedupePredictions(preds []RiskPrediction) []RiskPrediction {
	index := make(map[string]int, len(preds))
	out := make([]RiskPrediction, 0, len(preds))
	for _, p := range preds {
		if i, seen := index[p.InvoiceID]; seen {
			out[i] = p
			continue
		}
		index[p.InvoiceID] = len(out)
		out = append(out, p)
	}
	return out
}
