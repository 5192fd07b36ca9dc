package core

import (
	"context"
	"fmt"
	"time"

	"github.com/agenthands/providers/internal/core/model"
	"github.com/agenthands/providers/internal/driver"
	"github.com/agenthands/providers/internal/metrics"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

type ProviderService struct {
	Driver driver.GraphDriver
	logger *zap.Logger
}

func NewProviderService(d driver.GraphDriver, logger *zap.Logger) *ProviderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderService{
		Driver: d,
		logger: logger,
	}
}

// SelectQuery picks the template for a filter set. Both relations take
// precedence over either one alone.
func SelectQuery(fs model.FilterSet) string {
	switch {
	case fs.Has(model.RelationProducts) && fs.Has(model.RelationLifeScienceFirms):
		return driver.ProviderWithProductsAndFirmsQuery
	case fs.Has(model.RelationProducts):
		return driver.ProviderWithProductsQuery
	case fs.Has(model.RelationLifeScienceFirms):
		return driver.ProviderWithFirmsQuery
	default:
		return driver.ProviderOnlyQuery
	}
}

// Lookup returns the rows for a provider individual, joined according to fs.
// An unknown id yields an empty slice.
func (s *ProviderService) Lookup(ctx context.Context, id string, fs model.FilterSet, page model.Page) ([]model.ResultRow, error) {
	return s.lookup(ctx, "v2", id, fs, page)
}

// LookupV1 serves the single-filter contract: products are joined when
// includeProducts is set and the firm column is dropped.
func (s *ProviderService) LookupV1(ctx context.Context, id string, includeProducts bool, page model.Page) ([]model.ResultRowV1, error) {
	fs := model.NewFilterSet()
	if includeProducts {
		fs = model.NewFilterSet(model.RelationProducts)
	}

	rows, err := s.lookup(ctx, "v1", id, fs, page)
	if err != nil {
		return nil, err
	}

	out := make([]model.ResultRowV1, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.ResultRowV1{
			DisplayName: r.DisplayName,
			ProductName: r.ProductName,
		})
	}
	return out, nil
}

func (s *ProviderService) lookup(ctx context.Context, version, id string, fs model.FilterSet, page model.Page) ([]model.ResultRow, error) {
	shape := fs.Shape()
	params := map[string]interface{}{
		"id":    id,
		"skip":  int64(page.Skip),
		"limit": int64(page.Limit),
	}

	start := time.Now()
	records, err := s.Driver.ExecuteRead(ctx, SelectQuery(fs), params)
	metrics.LookupDuration.WithLabelValues(shape).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LookupsTotal.WithLabelValues(version, shape, "error").Inc()
		return nil, fmt.Errorf("failed to look up provider %q: %w", id, err)
	}

	rows := make([]model.ResultRow, 0, len(records))
	for _, rec := range records {
		row, err := toResultRow(rec)
		if err != nil {
			metrics.LookupsTotal.WithLabelValues(version, shape, "error").Inc()
			return nil, err
		}
		rows = append(rows, row)
	}

	metrics.LookupsTotal.WithLabelValues(version, shape, "ok").Inc()
	metrics.LookupRows.Observe(float64(len(rows)))
	s.logger.Debug("provider lookup",
		zap.String("id", id),
		zap.String("shape", shape),
		zap.Int("skip", page.Skip),
		zap.Int("limit", page.Limit),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

func toResultRow(rec *neo4j.Record) (model.ResultRow, error) {
	displayName, err := stringValue(rec, "display_name")
	if err != nil {
		return model.ResultRow{}, err
	}
	productName, err := stringValue(rec, "product_name")
	if err != nil {
		return model.ResultRow{}, err
	}
	firmName, err := stringValue(rec, "life_science_firm_name")
	if err != nil {
		return model.ResultRow{}, err
	}
	return model.ResultRow{
		DisplayName:         displayName,
		ProductName:         productName,
		LifeScienceFirmName: firmName,
	}, nil
}

// stringValue reads a string column, treating null as "".
func stringValue(rec *neo4j.Record, key string) (string, error) {
	v, isNil, err := neo4j.GetRecordValue[string](rec, key)
	if err != nil {
		return "", fmt.Errorf("invalid %s in record: %w", key, err)
	}
	if isNil {
		return "", nil
	}
	return v, nil
}
