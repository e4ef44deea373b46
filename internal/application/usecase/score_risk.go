package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/port"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/service"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/ml"
	"github.com/leonardo-lacerda-data/nuclea-fidics/pkg/observability"
)

// RiskConfig tunes one risk engine run.
type RiskConfig struct {
	// ForceRetrain refits the classifier even when a persisted artifact
	// exists. Requires the view to carry the default label column.
	ForceRetrain bool
	// Seed drives the holdout shuffle so a given dataset always splits the
	// same way.
	Seed int64

	Trees           int     // ensemble size, default 200
	MinorityWeight  int     // oversampling factor for the default class, default 2
	HoldoutFraction float64 // held-out share for evaluation, default 0.3
}

// RiskEngine scores every invoice in the feature view with a default
// probability, band and justification, and rewrites the predictions table.
type RiskEngine struct {
	features port.RiskFeatureSource
	models   port.ModelStore
	results  port.ResultWriter
	logger   *slog.Logger
	cfg      RiskConfig
}

// NewRiskEngine wires dependencies and applies config defaults.
func NewRiskEngine(
	features port.RiskFeatureSource,
	models port.ModelStore,
	results port.ResultWriter,
	logger *slog.Logger,
	cfg RiskConfig,
) *RiskEngine {
	if cfg.Trees <= 0 {
		cfg.Trees = 200
	}
	if cfg.MinorityWeight <= 0 {
		cfg.MinorityWeight = 2
	}
	if cfg.HoldoutFraction <= 0 || cfg.HoldoutFraction >= 1 {
		cfg.HoldoutFraction = 0.3
	}
	return &RiskEngine{
		features: features,
		models:   models,
		results:  results,
		logger:   logger,
		cfg:      cfg,
	}
}

// Execute runs one scoring batch:
// fetch -> derive sector -> select features -> load or train -> score ->
// band -> justify -> dedupe -> persist.
func (e *RiskEngine) Execute(ctx context.Context) (model.RunReport, error) {
	report := model.RunReport{
		RunID:   uuid.NewString(),
		Engine:  "risk",
		Outcome: model.OutcomeCompleted,
	}
	log := observability.RunLogger(e.logger, report.Engine, report.RunID)

	view, err := e.features.FetchRiskView(ctx)
	if err != nil {
		return report, fmt.Errorf("risk: fetch view: %w", err)
	}
	report.Rows = len(view.Rows)
	if report.Rows == 0 {
		report.Outcome = model.OutcomeEmptyDataset
		log.Warn("risk view returned no rows, leaving predictions table untouched")
		return report, nil
	}

	for i := range view.Rows {
		view.Rows[i].Sector = service.DeriveSector(view.Rows[i].SectorCode)
	}

	spec := model.ResolveVector(view.Columns)
	if len(spec.Names) == 0 {
		return report, errors.New("risk: view supplies none of the canonical feature columns")
	}
	x := spec.Matrix(view.Rows)
	log.Info("risk view loaded", "rows", report.Rows, "features", len(spec.Names))

	art, err := e.loadOrTrain(ctx, log, view, spec, x, &report)
	if err != nil {
		return report, err
	}

	scaled, err := art.Scaler.Transform(x)
	if err != nil {
		return report, fmt.Errorf("risk: %w: %v", model.ErrArtifactCorrupt, err)
	}

	preds := make([]model.RiskPrediction, 0, len(view.Rows))
	for i, row := range view.Rows {
		prob := roundProbability(ml.ProbDefault(art.Forest, scaled[i]))
		preds = append(preds, model.RiskPrediction{
			InvoiceID:     row.InvoiceID,
			Probability:   prob,
			Band:          service.BandFor(prob),
			Justification: service.Justify(row, prob),
		})
	}

	preds = model.DedupePredictions(preds)

	if err := e.results.ReplacePredictions(ctx, preds); err != nil {
		return report, fmt.Errorf("risk: persist predictions: %w", err)
	}
	report.Persisted = len(preds)

	log.Info("risk run completed",
		"persisted", report.Persisted,
		"trained", report.Trained,
	)
	return report, nil
}

// loadOrTrain reuses the persisted artifact unless force-retrain is set or no
// usable artifact exists. Training evaluates on a reproducible 70/30 holdout,
// then refits scaler and model on all rows before persisting; the
// held-out-only model is never saved.
func (e *RiskEngine) loadOrTrain(
	ctx context.Context,
	log *slog.Logger,
	view model.RiskView,
	spec model.VectorSpec,
	x [][]float64,
	report *model.RunReport,
) (*ml.RiskArtifact, error) {
	if !e.cfg.ForceRetrain {
		payload, err := e.models.Load(ctx, ml.PurposeRisk)
		switch {
		case errors.Is(err, model.ErrArtifactNotFound):
			log.Info("no persisted risk model, training a new one")
		case err != nil:
			return nil, fmt.Errorf("risk: load artifact: %w", err)
		default:
			art, decErr := ml.DecodeRiskArtifact(payload)
			if decErr != nil {
				return nil, fmt.Errorf("risk: %w: %v", model.ErrArtifactCorrupt, decErr)
			}
			if !slices.Equal(art.Features, spec.Names) {
				return nil, fmt.Errorf("risk: %w: artifact fitted on %v, view resolved %v",
					model.ErrArtifactCorrupt, art.Features, spec.Names)
			}
			log.Info("persisted risk model loaded")
			return art, nil
		}
	}

	if !view.HasTarget() {
		return nil, fmt.Errorf("risk: %w", model.ErrMissingTarget)
	}

	y := make([]int, len(view.Rows))
	for i, row := range view.Rows {
		y[i] = row.Target
	}

	trainX, trainY, testX, testY := ml.SplitHoldout(x, y, e.cfg.HoldoutFraction, e.cfg.Seed)

	evalScaler := ml.FitScaler(trainX)
	trainScaled, err := evalScaler.Transform(trainX)
	if err != nil {
		return nil, fmt.Errorf("risk: scale training rows: %w", err)
	}
	testScaled, err := evalScaler.Transform(testX)
	if err != nil {
		return nil, fmt.Errorf("risk: scale held-out rows: %w", err)
	}

	evalForest := ml.TrainForest(trainScaled, trainY, e.cfg.Trees, e.cfg.MinorityWeight)
	report.HoldoutAccuracy = ml.Accuracy(evalForest, testScaled, testY)
	log.Info("held-out evaluation",
		"accuracy", report.HoldoutAccuracy,
		"train_rows", len(trainX),
		"holdout_rows", len(testX),
	)

	scaler := ml.FitScaler(x)
	allScaled, err := scaler.Transform(x)
	if err != nil {
		return nil, fmt.Errorf("risk: scale full dataset: %w", err)
	}
	forest := ml.TrainForest(allScaled, y, e.cfg.Trees, e.cfg.MinorityWeight)

	art := &ml.RiskArtifact{Features: spec.Names, Scaler: scaler, Forest: forest}
	payload, err := art.Encode()
	if err != nil {
		return nil, fmt.Errorf("risk: encode artifact: %w", err)
	}
	if err := e.models.Save(ctx, ml.PurposeRisk, payload); err != nil {
		return nil, fmt.Errorf("risk: save artifact: %w", err)
	}
	report.Trained = true
	log.Info("risk model trained and persisted", "trees", e.cfg.Trees)
	return art, nil
}

func roundProbability(p float64) float64 {
	return math.Round(p*10000) / 10000
}
