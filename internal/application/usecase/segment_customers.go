package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/port"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/service"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/ml"
	"github.com/leonardo-lacerda-data/nuclea-fidics/pkg/observability"
)

// Customer-grain feature names, in vector order. Fixed: the behavioral view
// always aggregates these three per payer.
var clusterFeatures = []string{"purchase_frequency", "avg_ticket", "avg_days_late"}

// ClusterConfig tunes one segmentation run.
type ClusterConfig struct {
	ForceRetrain bool

	Partitions int     // k for the centroid model, default 4
	Eps        float64 // density scan neighborhood radius, default 1.0
	MinPts     int     // density scan minimum neighbors, default 3
}

// ClusterEngine groups payers into behavioral segments, flags anomalous
// customers, and rewrites the invoice-grain cluster table.
type ClusterEngine struct {
	features port.CustomerFeatureSource
	models   port.ModelStore
	results  port.ResultWriter
	logger   *slog.Logger
	cfg      ClusterConfig
}

// NewClusterEngine wires dependencies and applies config defaults.
func NewClusterEngine(
	features port.CustomerFeatureSource,
	models port.ModelStore,
	results port.ResultWriter,
	logger *slog.Logger,
	cfg ClusterConfig,
) *ClusterEngine {
	if cfg.Partitions <= 0 {
		cfg.Partitions = 4
	}
	if cfg.Eps <= 0 {
		cfg.Eps = 1.0
	}
	if cfg.MinPts <= 0 {
		cfg.MinPts = 3
	}
	return &ClusterEngine{
		features: features,
		models:   models,
		results:  results,
		logger:   logger,
		cfg:      cfg,
	}
}

// Execute runs one segmentation batch:
// fetch customer view -> load or train -> assign -> label -> detect
// anomalies -> expand to invoices -> persist.
func (e *ClusterEngine) Execute(ctx context.Context) (model.RunReport, error) {
	report := model.RunReport{
		RunID:   uuid.NewString(),
		Engine:  "cluster",
		Outcome: model.OutcomeCompleted,
	}
	log := observability.RunLogger(e.logger, report.Engine, report.RunID)

	profiles, err := e.features.FetchCustomerView(ctx)
	if err != nil {
		return report, fmt.Errorf("cluster: fetch customer view: %w", err)
	}
	report.Rows = len(profiles)
	if report.Rows == 0 {
		report.Outcome = model.OutcomeEmptyDataset
		log.Warn("customer view returned no rows, leaving cluster table untouched")
		return report, nil
	}

	x := make([][]float64, len(profiles))
	for i, p := range profiles {
		x[i] = []float64{p.PurchaseFrequency, p.AvgTicket, p.AvgDaysLate}
	}
	log.Info("customer view loaded", "customers", report.Rows)

	art, err := e.loadOrTrain(ctx, log, x, &report)
	if err != nil {
		return report, err
	}

	scaled, err := art.Scaler.Transform(x)
	if err != nil {
		return report, fmt.Errorf("cluster: %w: %v", model.ErrArtifactCorrupt, err)
	}

	clusterIDs := make([]int, len(profiles))
	for i := range scaled {
		clusterIDs[i] = ml.AssignNearest(scaled[i], art.Centroids)
	}
	labels := service.LabelClusters(profiles, clusterIDs, e.cfg.Partitions)

	// The density scan runs on the same standardized space but its labels
	// are independent of the partitions: noise means anomalous, whichever
	// segment the customer belongs to.
	noise := ml.DBSCAN(scaled, e.cfg.Eps, e.cfg.MinPts)

	assignments := make(map[string]model.CustomerAssignment, len(profiles))
	report.Profiles = make(map[string]int, e.cfg.Partitions)
	for i, p := range profiles {
		anomalous := noise[i] == ml.NoiseLabel
		if anomalous {
			report.Anomalies++
		}
		label := labels[clusterIDs[i]]
		report.Profiles[label]++
		assignments[p.PayerID] = model.CustomerAssignment{
			PayerID:      p.PayerID,
			ClusterID:    clusterIDs[i],
			ProfileLabel: label,
			Anomalous:    anomalous,
		}
	}
	log.Info("segments assigned", "profiles", report.Profiles, "anomalies", report.Anomalies)

	payers, err := e.features.FetchInvoicePayers(ctx)
	if err != nil {
		return report, fmt.Errorf("cluster: fetch invoice payers: %w", err)
	}

	// Inner join back to invoice grain: invoices whose payer has no
	// customer-grain row are dropped on purpose.
	rows := make([]model.ClusterAssignment, 0, len(payers))
	for _, ip := range payers {
		a, ok := assignments[ip.PayerID]
		if !ok {
			continue
		}
		rows = append(rows, model.ClusterAssignment{
			InvoiceID:   ip.InvoiceID,
			ClusterID:   a.ClusterID,
			ProfileText: service.ProfileText(a.ProfileLabel, a.Anomalous),
		})
	}

	if err := e.results.ReplaceAssignments(ctx, rows); err != nil {
		return report, fmt.Errorf("cluster: persist assignments: %w", err)
	}
	report.Persisted = len(rows)

	log.Info("cluster run completed",
		"persisted", report.Persisted,
		"trained", report.Trained,
	)
	return report, nil
}

func (e *ClusterEngine) loadOrTrain(
	ctx context.Context,
	log *slog.Logger,
	x [][]float64,
	report *model.RunReport,
) (*ml.ClusterArtifact, error) {
	if !e.cfg.ForceRetrain {
		payload, err := e.models.Load(ctx, ml.PurposeCluster)
		switch {
		case errors.Is(err, model.ErrArtifactNotFound):
			log.Info("no persisted cluster model, training a new one")
		case err != nil:
			return nil, fmt.Errorf("cluster: load artifact: %w", err)
		default:
			art, decErr := ml.DecodeClusterArtifact(payload)
			if decErr != nil {
				return nil, fmt.Errorf("cluster: %w: %v", model.ErrArtifactCorrupt, decErr)
			}
			if art.Scaler.Dims() != len(clusterFeatures) {
				return nil, fmt.Errorf("cluster: %w: artifact fitted on %d features, expected %d",
					model.ErrArtifactCorrupt, art.Scaler.Dims(), len(clusterFeatures))
			}
			log.Info("persisted cluster model loaded")
			return art, nil
		}
	}

	scaler := ml.FitScaler(x)
	scaled, err := scaler.Transform(x)
	if err != nil {
		return nil, fmt.Errorf("cluster: scale customers: %w", err)
	}

	centroids, err := ml.TrainKMeans(scaled, e.cfg.Partitions)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}

	art := &ml.ClusterArtifact{Features: clusterFeatures, Scaler: scaler, Centroids: centroids}
	payload, err := art.Encode()
	if err != nil {
		return nil, fmt.Errorf("cluster: encode artifact: %w", err)
	}
	if err := e.models.Save(ctx, ml.PurposeCluster, payload); err != nil {
		return nil, fmt.Errorf("cluster: save artifact: %w", err)
	}
	report.Trained = true
	log.Info("cluster model trained and persisted", "partitions", e.cfg.Partitions)
	return art, nil
}
