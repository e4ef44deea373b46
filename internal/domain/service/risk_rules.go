package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Risk rules – banding, sector derivation and justification text
// ---------------------------------------------------------------------------

// Thresholds used by the justification checklist. Treated as named constants
// rather than configuration: the credit desk reviews them, not operators.
const (
	bandHighThreshold   = 0.7
	bandMediumThreshold = 0.3

	volumeScoreFloor     = 100.0
	sectorSentimentFloor = -0.15
	policyRateCeiling    = 12.0

	maxJustificationLen = 250
)

// BandFor buckets a default probability into LOW/MEDIUM/HIGH.
// A value exactly at 0.7 is MEDIUM and exactly at 0.3 is LOW.
func BandFor(prob float64) model.RiskBand {
	switch {
	case prob > bandHighThreshold:
		return model.BandHigh
	case prob > bandMediumThreshold:
		return model.BandMedium
	default:
		return model.BandLow
	}
}

// DeriveSector maps the first two digits of an activity code to a coarse
// sector tag. Ranges are fixed by business convention. Unparseable codes map
// to OTHER; a bad code on one row must never abort a whole run.
func DeriveSector(code string) model.SectorTag {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) > 2 {
		trimmed = trimmed[:2]
	}
	prefix, err := strconv.Atoi(trimmed)
	if err != nil {
		return model.SectorOther
	}

	switch {
	case prefix >= 1 && prefix <= 3:
		return model.SectorAgro
	case (prefix >= 5 && prefix <= 33) || (prefix >= 41 && prefix <= 43):
		return model.SectorIndustry
	case prefix >= 45 && prefix <= 47:
		return model.SectorRetail
	case prefix >= 49:
		return model.SectorServices
	default:
		return model.SectorOther
	}
}

// Justify builds the human-readable explanation for one scored invoice. The
// checklist runs against the raw (pre-scaling) features in fixed order; fired
// reasons are joined with ". " and the result is capped at 250 characters.
func Justify(row model.FeatureRow, prob float64) string {
	var reasons []string

	// 1. Behavioral: thin payment history.
	if row.VolumeScore < volumeScoreFloor {
		reasons = append(reasons, "insufficient payment history")
	}

	// 2. Sector news sentiment.
	if row.SentimentScore < sectorSentimentFloor {
		reasons = append(reasons, fmt.Sprintf("negative sector news (%s)", row.Sector))
	}

	// 3. Agro production shortfall.
	if row.Sector == model.SectorAgro && row.AgroProductionVariation < 0 {
		reasons = append(reasons, "harvest/production shortfall")
	}

	// 4. Macro: interest-rate pressure.
	if row.PolicyRate > policyRateCeiling {
		reasons = append(reasons, "high interest-rate pressure")
	}

	if len(reasons) == 0 {
		if prob > 0.5 {
			reasons = append(reasons, "general statistical risk indicators")
		} else {
			reasons = append(reasons, "favorable overall indicators")
		}
	}

	text := strings.Join(reasons, ". ") + "."
	if len(text) > maxJustificationLen {
		text = text[:maxJustificationLen]
	}
	return text
}
