package model

import "github.com/shopspring/decimal"

// SectorTag is the coarse economic-activity classification derived from the
// first two digits of a company's activity code.
type SectorTag string

const (
	SectorAgro     SectorTag = "AGRO"
	SectorIndustry SectorTag = "INDUSTRY"
	SectorRetail   SectorTag = "RETAIL"
	SectorServices SectorTag = "SERVICES"
	SectorOther    SectorTag = "OTHER"
)

// FeatureRow is one row of the risk training/scoring view, at invoice grain.
// Numeric fields are zero-filled by the adapter, so they are never "null" by
// the time an engine sees them.
type FeatureRow struct {
	InvoiceID        string
	PayerID          string
	NominalValue     decimal.Decimal
	TermDays         float64
	MaterialityScore float64
	VolumeScore      float64
	SectorCode       string
	Sector           SectorTag // derived from SectorCode, not read from the view

	// Macro indicators.
	PolicyRate       float64
	FXRate           float64
	UnemploymentRate float64
	ActivityIndex    float64

	// Sector variation indicators.
	RetailVariation         float64
	IndustryVariation       float64
	ServicesVariation       float64
	AgroProductionVariation float64
	LivestockVariation      float64

	SentimentScore  float64
	MacroSectorCode float64

	// Target is the default label (0/1). Only meaningful when the view
	// carries the target column; see RiskView.Columns.
	Target int
}

// FeatureSet records which canonical columns the upstream view actually
// supplied. Absent canonical features are silently skipped at feature
// selection time.
type FeatureSet map[string]bool

// Has reports whether the named column was present in the fetched view.
func (s FeatureSet) Has(name string) bool { return s[name] }

// RiskView is the fetched training/scoring dataset together with the set of
// columns the view supplied.
type RiskView struct {
	Rows    []FeatureRow
	Columns FeatureSet
}

// HasTarget reports whether the view carries the default label column.
func (v RiskView) HasTarget() bool { return v.Columns.Has(TargetColumn) }
