package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/leonardo-lacerda-data/nuclea-fidics/pkg/observability"
	"github.com/leonardo-lacerda-data/nuclea-fidics/pkg/postgres"
)

// RiskConfig carries the risk engine tunables.
type RiskConfig struct {
	Seed            int64
	Trees           int
	MinorityWeight  int
	HoldoutFraction float64
}

// ClusterConfig carries the segmentation engine tunables.
type ClusterConfig struct {
	Partitions int
	Eps        float64
	MinPts     int
}

// Config is the full runtime configuration, resolved from FIDICS_*
// environment variables with sane local defaults.
type Config struct {
	Log            observability.LogConfig
	DB             postgres.Config
	ModelStorePath string
	Risk           RiskConfig
	Cluster        ClusterConfig
}

// Load resolves the configuration from the environment.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("FIDICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "fidics")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "fidics_datamart")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_conns", 4)

	v.SetDefault("modelstore.path", "fidics_models.db")

	v.SetDefault("risk.seed", 42)
	v.SetDefault("risk.trees", 200)
	v.SetDefault("risk.minority_weight", 2)
	v.SetDefault("risk.holdout_fraction", 0.3)

	v.SetDefault("cluster.partitions", 4)
	v.SetDefault("cluster.eps", 1.0)
	v.SetDefault("cluster.min_pts", 3)

	return Config{
		Log: observability.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		DB: postgres.Config{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Database: v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
			MaxConns: int32(v.GetInt("db.max_conns")),
		},
		ModelStorePath: v.GetString("modelstore.path"),
		Risk: RiskConfig{
			Seed:            v.GetInt64("risk.seed"),
			Trees:           v.GetInt("risk.trees"),
			MinorityWeight:  v.GetInt("risk.minority_weight"),
			HoldoutFraction: v.GetFloat64("risk.holdout_fraction"),
		},
		Cluster: ClusterConfig{
			Partitions: v.GetInt("cluster.partitions"),
			Eps:        v.GetFloat64("cluster.eps"),
			MinPts:     v.GetInt("cluster.min_pts"),
		},
	}
}

// Validate checks the fields that have no usable default.
func (c Config) Validate() error {
	if c.DB.Password == "" {
		return errors.New("FIDICS_DB_PASSWORD is required")
	}
	if c.ModelStorePath == "" {
		return errors.New("FIDICS_MODELSTORE_PATH must not be empty")
	}
	return nil
}
