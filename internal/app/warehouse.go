package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"

	"github.com/riskibarqy/scouting-panel/internal/config"
	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
	bqrepo "github.com/riskibarqy/scouting-panel/internal/infrastructure/repository/bigquery"
	"github.com/riskibarqy/scouting-panel/internal/infrastructure/repository/memory"
	pgrepo "github.com/riskibarqy/scouting-panel/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/scouting-panel/internal/platform/logging"
)

// warehouse is the raw read side before guarding and caching.
type warehouse struct {
	backend string
	kpi     kpi.Repository
	scout   scout.Repository
	close   func() error
}

func openWarehouse(ctx context.Context, cfg config.Config, logger *logging.Logger) (warehouse, error) {
	switch cfg.WarehouseDriver {
	case config.WarehousePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return warehouse{}, err
		}
		logger.Info("warehouse connected", "driver", cfg.WarehouseDriver, "db", databaseName(cfg.DBURL), "schema", cfg.WarehouseDataset)
		return warehouse{
			backend: config.WarehousePostgres,
			kpi:     pgrepo.NewKPIRepository(db, cfg.WarehouseDataset),
			scout:   pgrepo.NewScoutRepository(db, cfg.WarehouseDataset),
			close:   db.Close,
		}, nil

	case config.WarehouseBigQuery:
		client, err := bqrepo.NewClient(ctx, bqrepo.ClientOptions{
			ProjectID:       cfg.BigQueryProjectID,
			CredentialsFile: cfg.BigQueryCredentialsFile,
			CredentialsJSON: cfg.BigQueryCredentialsJSON,
		})
		if err != nil {
			return warehouse{}, err
		}
		logger.Info("warehouse connected", "driver", cfg.WarehouseDriver, "project", cfg.BigQueryProjectID, "dataset", cfg.WarehouseDataset)
		return warehouse{
			backend: config.WarehouseBigQuery,
			kpi:     bqrepo.NewKPIRepository(client, cfg.WarehouseDataset),
			scout:   bqrepo.NewScoutRepository(client, cfg.WarehouseDataset),
			close:   client.Close,
		}, nil

	case config.WarehouseMemory:
		logger.Warn("using in-memory seed warehouse", "driver", cfg.WarehouseDriver)
		return warehouse{
			backend: config.WarehouseMemory,
			kpi:     memory.NewKPIRepository(memory.SeedKPIRows()),
			scout:   memory.NewScoutRepository(memory.SeedScoutCodes()),
			close:   func() error { return nil },
		}, nil
	}

	return warehouse{}, fmt.Errorf("unsupported warehouse driver %q", cfg.WarehouseDriver)
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", warehouseDSN(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(databaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	return db, nil
}
