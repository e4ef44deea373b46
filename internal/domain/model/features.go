package model

// Canonical column names of the risk feature view. The order of
// canonicalFeatures is the wire order of the numeric feature vector; both the
// train and score paths go through the same resolved VectorSpec.
const (
	ColNominalValue            = "nominal_value"
	ColTermDays                = "term_days"
	ColMaterialityScore        = "materiality_score"
	ColVolumeScore             = "volume_score"
	ColPolicyRate              = "policy_rate"
	ColFXRate                  = "fx_rate"
	ColUnemploymentRate        = "unemployment_rate"
	ColActivityIndex           = "activity_index"
	ColRetailVariation         = "retail_variation"
	ColIndustryVariation       = "industry_variation"
	ColServicesVariation       = "services_variation"
	ColAgroProductionVariation = "agro_production_variation"
	ColLivestockVariation      = "livestock_variation"
	ColSentimentScore          = "sentiment_score"
	ColMacroSectorCode         = "macro_sector_code"

	// TargetColumn is the binary default label, present only on training views.
	TargetColumn = "default_occurred"
)

var canonicalFeatures = []string{
	ColNominalValue,
	ColTermDays,
	ColMaterialityScore,
	ColVolumeScore,
	ColPolicyRate,
	ColFXRate,
	ColUnemploymentRate,
	ColActivityIndex,
	ColRetailVariation,
	ColIndustryVariation,
	ColServicesVariation,
	ColAgroProductionVariation,
	ColLivestockVariation,
	ColSentimentScore,
	ColMacroSectorCode,
}

var featureAccessors = map[string]func(FeatureRow) float64{
	ColNominalValue:            func(r FeatureRow) float64 { return r.NominalValue.InexactFloat64() },
	ColTermDays:                func(r FeatureRow) float64 { return r.TermDays },
	ColMaterialityScore:        func(r FeatureRow) float64 { return r.MaterialityScore },
	ColVolumeScore:             func(r FeatureRow) float64 { return r.VolumeScore },
	ColPolicyRate:              func(r FeatureRow) float64 { return r.PolicyRate },
	ColFXRate:                  func(r FeatureRow) float64 { return r.FXRate },
	ColUnemploymentRate:        func(r FeatureRow) float64 { return r.UnemploymentRate },
	ColActivityIndex:           func(r FeatureRow) float64 { return r.ActivityIndex },
	ColRetailVariation:         func(r FeatureRow) float64 { return r.RetailVariation },
	ColIndustryVariation:       func(r FeatureRow) float64 { return r.IndustryVariation },
	ColServicesVariation:       func(r FeatureRow) float64 { return r.ServicesVariation },
	ColAgroProductionVariation: func(r FeatureRow) float64 { return r.AgroProductionVariation },
	ColLivestockVariation:      func(r FeatureRow) float64 { return r.LivestockVariation },
	ColSentimentScore:          func(r FeatureRow) float64 { return r.SentimentScore },
	ColMacroSectorCode:         func(r FeatureRow) float64 { return r.MacroSectorCode },
}

// VectorSpec is a fixed, ordered feature vector definition resolved once per
// run from the intersection of the canonical feature list with the columns
// the view actually supplied.
type VectorSpec struct {
	Names []string
}

// ResolveVector intersects the canonical feature list with the present
// columns, preserving canonical order. Canonical features absent from the
// view are skipped so older views keep working against newer engine builds.
func ResolveVector(present FeatureSet) VectorSpec {
	names := make([]string, 0, len(canonicalFeatures))
	for _, name := range canonicalFeatures {
		if present.Has(name) {
			names = append(names, name)
		}
	}
	return VectorSpec{Names: names}
}

// Extract builds the numeric feature vector for one row.
func (s VectorSpec) Extract(r FeatureRow) []float64 {
	vec := make([]float64, len(s.Names))
	for i, name := range s.Names {
		vec[i] = featureAccessors[name](r)
	}
	return vec
}

// Matrix builds the feature matrix for a slice of rows.
func (s VectorSpec) Matrix(rows []FeatureRow) [][]float64 {
	m := make([][]float64, len(rows))
	for i, r := range rows {
		m[i] = s.Extract(r)
	}
	return m
}
