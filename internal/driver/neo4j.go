package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

type Neo4jDriver struct {
	Driver       neo4j.DriverWithContext
	Database     string
	QueryTimeout time.Duration
	logger       *zap.Logger
}

type Options struct {
	URI          string
	Username     string
	Password     string
	Database     string
	QueryTimeout time.Duration
}

// NewNeo4jDriver creates the process-wide driver handle and verifies the server is reachable.
func NewNeo4jDriver(ctx context.Context, opts Options, logger *zap.Logger) (*Neo4jDriver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, neo4j.BasicAuth(opts.Username, opts.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", opts.URI, err)
	}

	logger.Info("Connected to Neo4j", zap.String("uri", opts.URI), zap.String("database", opts.Database))
	return &Neo4jDriver{
		Driver:       driver,
		Database:     opts.Database,
		QueryTimeout: opts.QueryTimeout,
		logger:       logger,
	}, nil
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *Neo4jDriver) VerifyConnectivity(ctx context.Context) error {
	return d.Driver.VerifyConnectivity(ctx)
}

func (d *Neo4jDriver) ExecuteRead(ctx context.Context, query string, params map[string]interface{}) ([]*neo4j.Record, error) {
	session := d.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: d.Database,
	})
	defer func() {
		if err := session.Close(ctx); err != nil {
			d.logger.Warn("failed to close session", zap.Error(err))
		}
	}()

	var configurers []func(*neo4j.TransactionConfig)
	if d.QueryTimeout > 0 {
		configurers = append(configurers, neo4j.WithTxTimeout(d.QueryTimeout))
	}

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	}, configurers...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute read: %w", err)
	}

	return result.([]*neo4j.Record), nil
}
