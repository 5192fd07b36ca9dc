package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type GraphDriver interface {
	// ExecuteRead runs one query in its own read-only session and returns every record.
	ExecuteRead(ctx context.Context, query string, params map[string]interface{}) ([]*neo4j.Record, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}
