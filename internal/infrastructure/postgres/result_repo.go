package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
	pgsupport "github.com/leonardo-lacerda-data/nuclea-fidics/pkg/postgres"
)

// Destination tables, rewritten wholesale on every run.
const (
	predictionsTable = "risk_predictions"
	assignmentsTable = "cluster_assignments"
)

// ResultRepo materializes engine output. Implements port.ResultWriter.
// Each Replace* call is one transaction: delete everything, insert the new
// rows. A failed insert rolls the delete back, so the table is never left
// partially truncated.
type ResultRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewResultRepo creates a datamart-backed result materializer.
func NewResultRepo(pool *pgxpool.Pool, logger *slog.Logger) *ResultRepo {
	return &ResultRepo{pool: pool, logger: logger}
}

// ReplacePredictions rewrites the risk predictions table.
func (r *ResultRepo) ReplacePredictions(ctx context.Context, rows []model.RiskPrediction) error {
	insert, _, err := psql.
		Insert(predictionsTable).
		Columns("invoice_id", "default_probability", "risk_band", "justification").
		Values(nil, nil, nil, nil).
		ToSql()
	if err != nil {
		return fmt.Errorf("build predictions insert: %w", err)
	}

	err = pgsupport.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM "+predictionsTable); err != nil {
			return fmt.Errorf("clear predictions: %w", err)
		}

		batch := &pgx.Batch{}
		for _, p := range rows {
			batch.Queue(insert, p.InvoiceID, p.Probability, string(p.Band), p.Justification)
		}
		return sendBatch(ctx, tx, batch)
	})
	if err != nil {
		return fmt.Errorf("replace predictions: %w", err)
	}

	r.logger.Debug("predictions table rewritten", "rows", len(rows))
	return nil
}

// ReplaceAssignments rewrites the invoice-grain cluster table.
func (r *ResultRepo) ReplaceAssignments(ctx context.Context, rows []model.ClusterAssignment) error {
	insert, _, err := psql.
		Insert(assignmentsTable).
		Columns("invoice_id", "cluster_id", "profile_text").
		Values(nil, nil, nil).
		ToSql()
	if err != nil {
		return fmt.Errorf("build assignments insert: %w", err)
	}

	err = pgsupport.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM "+assignmentsTable); err != nil {
			return fmt.Errorf("clear assignments: %w", err)
		}

		batch := &pgx.Batch{}
		for _, a := range rows {
			batch.Queue(insert, a.InvoiceID, a.ClusterID, a.ProfileText)
		}
		return sendBatch(ctx, tx, batch)
	})
	if err != nil {
		return fmt.Errorf("replace assignments: %w", err)
	}

	r.logger.Debug("cluster table rewritten", "rows", len(rows))
	return nil
}

func sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return br.Close()
}
