package model

// Outcome describes how an engine run ended.
type Outcome string

const (
	// OutcomeCompleted means results were computed and materialized.
	OutcomeCompleted Outcome = "COMPLETED"
	// OutcomeEmptyDataset means the feature view returned zero rows; the run
	// stopped early and the destination tables were intentionally left
	// untouched so a transient empty read cannot wipe valid prior results.
	OutcomeEmptyDataset Outcome = "EMPTY_DATASET"
)

// RunReport summarizes one engine run for the caller.
type RunReport struct {
	RunID   string
	Engine  string
	Outcome Outcome

	Rows      int  // rows fetched from the feature view
	Persisted int  // rows written to the destination table
	Trained   bool // true when a new model was fitted this run

	// HoldoutAccuracy is the held-out accuracy of the freshly trained risk
	// model. Only set when Trained is true on the risk engine.
	HoldoutAccuracy float64

	// Clustering-only fields.
	Anomalies int
	Profiles  map[string]int // profile label -> customer count
}
