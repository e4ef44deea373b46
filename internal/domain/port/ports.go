package port

import (
	"context"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
)

// RiskFeatureSource reads the pre-joined risk training/scoring view.
// Implementations degrade to an empty view (with a logged warning) when the
// upstream store is unreachable; callers treat an empty view as "skip the run,
// leave destination tables alone".
type RiskFeatureSource interface {
	FetchRiskView(ctx context.Context) (model.RiskView, error)
}

// CustomerFeatureSource reads the customer-grain behavioral view and the
// invoice-to-payer mapping used to expand assignments back to invoice grain.
type CustomerFeatureSource interface {
	FetchCustomerView(ctx context.Context) ([]model.CustomerProfile, error)
	FetchInvoicePayers(ctx context.Context) ([]model.InvoicePayer, error)
}

// ModelStore persists model artifacts keyed by purpose ("risk", "cluster").
// An artifact is one opaque payload holding the model and its paired scaler,
// so a torn model-without-scaler state is unrepresentable.
type ModelStore interface {
	// Load returns model.ErrArtifactNotFound when no artifact exists.
	Load(ctx context.Context, purpose string) ([]byte, error)
	// Save atomically overwrites the artifact for the purpose.
	Save(ctx context.Context, purpose string, payload []byte) error
}

// ResultWriter materializes engine results. Each Replace call deletes all
// existing rows of its destination table and inserts the given rows within a
// single transaction; on failure the table keeps its previous contents.
type ResultWriter interface {
	ReplacePredictions(ctx context.Context, rows []model.RiskPrediction) error
	ReplaceAssignments(ctx context.Context, rows []model.ClusterAssignment) error
}
