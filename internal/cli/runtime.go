package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/application/usecase"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/infrastructure/config"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/infrastructure/modelstore"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/infrastructure/postgres"
	"github.com/leonardo-lacerda-data/nuclea-fidics/pkg/observability"
	pgsupport "github.com/leonardo-lacerda-data/nuclea-fidics/pkg/postgres"
)

// runtime holds everything a command needs: config, logger, datamart pool,
// artifact store and the adapters built on top of them.
type runtime struct {
	cfg      config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	store    *modelstore.SQLiteStore
	features *postgres.FeatureViewRepo
	results  *postgres.ResultRepo
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := observability.InitLogger(cfg.Log)

	pool, err := pgsupport.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect datamart: %w", err)
	}

	store, err := modelstore.Open(ctx, cfg.ModelStorePath)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		store:    store,
		features: postgres.NewFeatureViewRepo(pool, logger),
		results:  postgres.NewResultRepo(pool, logger),
	}, nil
}

func (rt *runtime) Close() {
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("closing model store", "error", err)
	}
	rt.pool.Close()
}

func (rt *runtime) riskEngine(forceRetrain bool) *usecase.RiskEngine {
	return usecase.NewRiskEngine(rt.features, rt.store, rt.results, rt.logger, usecase.RiskConfig{
		ForceRetrain:    forceRetrain,
		Seed:            rt.cfg.Risk.Seed,
		Trees:           rt.cfg.Risk.Trees,
		MinorityWeight:  rt.cfg.Risk.MinorityWeight,
		HoldoutFraction: rt.cfg.Risk.HoldoutFraction,
	})
}

func (rt *runtime) clusterEngine(forceRetrain bool) *usecase.ClusterEngine {
	return usecase.NewClusterEngine(rt.features, rt.store, rt.results, rt.logger, usecase.ClusterConfig{
		ForceRetrain: forceRetrain,
		Partitions:   rt.cfg.Cluster.Partitions,
		Eps:          rt.cfg.Cluster.Eps,
		MinPts:       rt.cfg.Cluster.MinPts,
	})
}
