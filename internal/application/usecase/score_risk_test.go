package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/application/usecase"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
)

// --- Mock implementations ---

type mockRiskFeatureSource struct {
	fetchFunc func(ctx context.Context) (model.RiskView, error)
}

func (m *mockRiskFeatureSource) FetchRiskView(ctx context.Context) (model.RiskView, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	return model.RiskView{}, nil
}

type mockModelStore struct {
	loadFunc  func(ctx context.Context, purpose string) ([]byte, error)
	saveFunc  func(ctx context.Context, purpose string, payload []byte) error
	saved     map[string][]byte
	loadCalls int
	saveCalls int
}

func (m *mockModelStore) Load(ctx context.Context, purpose string) ([]byte, error) {
	m.loadCalls++
	if m.loadFunc != nil {
		return m.loadFunc(ctx, purpose)
	}
	if payload, ok := m.saved[purpose]; ok {
		return payload, nil
	}
	return nil, model.ErrArtifactNotFound
}

func (m *mockModelStore) Save(ctx context.Context, purpose string, payload []byte) error {
	m.saveCalls++
	if m.saveFunc != nil {
		return m.saveFunc(ctx, purpose, payload)
	}
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[purpose] = payload
	return nil
}

type mockResultWriter struct {
	replacePredsFunc   func(ctx context.Context, rows []model.RiskPrediction) error
	replaceAssignsFunc func(ctx context.Context, rows []model.ClusterAssignment) error
	predictions        [][]model.RiskPrediction
	assignments        [][]model.ClusterAssignment
}

func (m *mockResultWriter) ReplacePredictions(ctx context.Context, rows []model.RiskPrediction) error {
	if m.replacePredsFunc != nil {
		return m.replacePredsFunc(ctx, rows)
	}
	m.predictions = append(m.predictions, rows)
	return nil
}

func (m *mockResultWriter) ReplaceAssignments(ctx context.Context, rows []model.ClusterAssignment) error {
	if m.replaceAssignsFunc != nil {
		return m.replaceAssignsFunc(ctx, rows)
	}
	m.assignments = append(m.assignments, rows)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Fixtures ---

func trainingView(withTarget bool) model.RiskView {
	columns := model.FeatureSet{
		model.ColNominalValue:   true,
		model.ColTermDays:       true,
		model.ColVolumeScore:    true,
		model.ColPolicyRate:     true,
		model.ColSentimentScore: true,
	}
	if withTarget {
		columns[model.TargetColumn] = true
	}

	rows := make([]model.FeatureRow, 0, 20)
	for i := 0; i < 20; i++ {
		row := model.FeatureRow{
			InvoiceID:    fmt.Sprintf("inv-%03d", i),
			PayerID:      fmt.Sprintf("payer-%02d", i%5),
			NominalValue: decimal.NewFromInt(int64(1000 + i*50)),
			TermDays:     float64(30 + i),
			VolumeScore:  float64(200 + i*10),
			PolicyRate:   10.5,
			SectorCode:   "4711",
		}
		// The tail of the dataset defaults: bigger, longer, thinner history.
		if i >= 14 {
			row.NominalValue = decimal.NewFromInt(int64(50000 + i*1000))
			row.TermDays = float64(180 + i)
			row.VolumeScore = 10
			row.SentimentScore = -0.4
			row.Target = 1
		}
		rows = append(rows, row)
	}
	return model.RiskView{Rows: rows, Columns: columns}
}

func riskEngineDeps() (*mockRiskFeatureSource, *mockModelStore, *mockResultWriter) {
	return &mockRiskFeatureSource{}, &mockModelStore{}, &mockResultWriter{}
}

// --- Tests ---

func TestRiskEngine_Execute(t *testing.T) {
	t.Run("empty view skips the run and touches nothing", func(t *testing.T) {
		features, store, writer := riskEngineDeps()
		features.fetchFunc = func(context.Context) (model.RiskView, error) {
			return model.RiskView{}, nil
		}

		engine := usecase.NewRiskEngine(features, store, writer, discardLogger(), usecase.RiskConfig{})
		report, err := engine.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, model.OutcomeEmptyDataset, report.Outcome)
		assert.Zero(t, store.loadCalls)
		assert.Zero(t, store.saveCalls)
		assert.Empty(t, writer.predictions)
	})

	t.Run("fetch failure aborts without writes", func(t *testing.T) {
		features, store, writer := riskEngineDeps()
		features.fetchFunc = func(context.Context) (model.RiskView, error) {
			return model.RiskView{}, fmt.Errorf("datamart unreachable")
		}

		engine := usecase.NewRiskEngine(features, store, writer, discardLogger(), usecase.RiskConfig{})
		_, err := engine.Execute(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch view")
		assert.Empty(t, writer.predictions)
	})

	t.Run("force retrain without label column fails before any store write", func(t *testing.T) {
		features, store, writer := riskEngineDeps()
		features.fetchFunc = func(context.Context) (model.RiskView, error) {
			return trainingView(false), nil
		}

		engine := usecase.NewRiskEngine(features, store, writer, discardLogger(), usecase.RiskConfig{
			ForceRetrain: true,
			Trees:        10,
		})
		_, err := engine.Execute(context.Background())

		require.ErrorIs(t, err, model.ErrMissingTarget)
		assert.Zero(t, store.saveCalls)
		assert.Empty(t, writer.predictions)
	})

	t.Run("trains, persists the artifact, and scores every invoice", func(t *testing.T) {
		features, store, writer := riskEngineDeps()
		features.fetchFunc = func(context.Context) (model.RiskView, error) {
			return trainingView(true), nil
		}

		engine := usecase.NewRiskEngine(features, store, writer, discardLogger(), usecase.RiskConfig{
			Seed:  42,
			Trees: 25,
		})
		report, err := engine.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, model.OutcomeCompleted, report.Outcome)
		assert.True(t, report.Trained)
		assert.Equal(t, 1, store.saveCalls)
		assert.NotEmpty(t, store.saved["risk"])

		require.Len(t, writer.predictions, 1)
		preds := writer.predictions[0]
		require.Len(t, preds, 20)
		assert.Equal(t, 20, report.Persisted)

		for _, p := range preds {
			assert.GreaterOrEqual(t, p.Probability, 0.0)
			assert.LessOrEqual(t, p.Probability, 1.0)
			assert.Contains(t, []model.RiskBand{model.BandLow, model.BandMedium, model.BandHigh}, p.Band)
			assert.NotEmpty(t, p.Justification)
			assert.LessOrEqual(t, len(p.Justification), 250)
		}
	})

	t.Run("duplicate invoice ids collapse to the last computed value", func(t *testing.T) {
		features, store, writer := riskEngineDeps()
		features.fetchFunc = func(context.Context) (model.RiskView, error) {
			view := trainingView(true)
			view.Rows[3].InvoiceID = view.Rows[2].InvoiceID
			return view, nil
		}

		engine := usecase.NewRiskEngine(features, store, writer, discardLogger(), usecase.RiskConfig{
			Seed:  42,
			Trees: 25,
		})
		report, err := engine.Execute(context.Background())

		require.NoError(t, err)
		require.Len(t, writer.predictions, 1)
		assert.Len(t, writer.predictions[0], 19)
		assert.Equal(t, 19, report.Persisted)

		seen := make(map[string]bool)
		for _, p := range writer.predictions[0] {
			assert.False(t, seen[p.InvoiceID], "invoice %s persisted twice", p.InvoiceID)
			seen[p.InvoiceID] = true
		}
	})

	t.Run("corrupt persisted artifact is surfaced", func(t *testing.T) {
		features, store, writer := riskEngineDeps()
		features.fetchFunc = func(context.Context) (model.RiskView, error) {
			return trainingView(true), nil
		}
		store.loadFunc = func(context.Context, string) ([]byte, error) {
			return []byte("definitely not a model"), nil
		}

		engine := usecase.NewRiskEngine(features, store, writer, discardLogger(), usecase.RiskConfig{})
		_, err := engine.Execute(context.Background())

		require.ErrorIs(t, err, model.ErrArtifactCorrupt)
		assert.Empty(t, writer.predictions)
	})

	t.Run("artifact save failure aborts before persisting predictions", func(t *testing.T) {
		features, store, writer := riskEngineDeps()
		features.fetchFunc = func(context.Context) (model.RiskView, error) {
			return trainingView(true), nil
		}
		store.saveFunc = func(context.Context, string, []byte) error {
			return fmt.Errorf("artifact store full")
		}

		engine := usecase.NewRiskEngine(features, store, writer, discardLogger(), usecase.RiskConfig{
			ForceRetrain: true,
			Trees:        10,
		})
		_, err := engine.Execute(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "save artifact")
		assert.Empty(t, writer.predictions)
	})

	t.Run("persistence failure is reported", func(t *testing.T) {
		features, store, writer := riskEngineDeps()
		features.fetchFunc = func(context.Context) (model.RiskView, error) {
			return trainingView(true), nil
		}
		writer.replacePredsFunc = func(context.Context, []model.RiskPrediction) error {
			return fmt.Errorf("relation locked")
		}

		engine := usecase.NewRiskEngine(features, store, writer, discardLogger(), usecase.RiskConfig{
			Trees: 10,
		})
		_, err := engine.Execute(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "persist predictions")
	})
}
