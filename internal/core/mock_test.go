package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MockDriver serves Records in order and applies $skip / $limit like the database would.
type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	Calls         int
	Records       []*neo4j.Record
	Err           error
}

func (m *MockDriver) ExecuteRead(ctx context.Context, query string, params map[string]interface{}) ([]*neo4j.Record, error) {
	m.Calls++
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return nil, m.Err
	}

	skip, _ := params["skip"].(int64)
	limit, _ := params["limit"].(int64)
	if skip >= int64(len(m.Records)) {
		return []*neo4j.Record{}, nil
	}
	end := skip + limit
	if end > int64(len(m.Records)) {
		end = int64(len(m.Records))
	}
	return m.Records[skip:end], nil
}

func (m *MockDriver) VerifyConnectivity(ctx context.Context) error {
	return m.Err
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func row(displayName, productName, firmName interface{}) *neo4j.Record {
	return &neo4j.Record{
		Keys:   []string{"display_name", "product_name", "life_science_firm_name"},
		Values: []any{displayName, productName, firmName},
	}
}
