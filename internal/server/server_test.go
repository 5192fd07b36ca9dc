package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agenthands/providers/internal/config"
	"github.com/agenthands/providers/internal/driver"
	"github.com/agenthands/providers/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	Records       []*neo4j.Record
	Err           error
}

func (m *MockDriver) ExecuteRead(ctx context.Context, query string, params map[string]interface{}) ([]*neo4j.Record, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

func (m *MockDriver) VerifyConnectivity(ctx context.Context) error {
	return m.Err
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func record(displayName, productName, firmName string) *neo4j.Record {
	return &neo4j.Record{
		Keys:   []string{"display_name", "product_name", "life_science_firm_name"},
		Values: []any{displayName, productName, firmName},
	}
}

func newTestServer(d driver.GraphDriver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Pagination: config.PaginationConfig{DefaultLimit: 50}}
	return NewServer(cfg, d, nil).SetupRouter()
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGetProviders_BothRelations(t *testing.T) {
	mockDriver := &MockDriver{Records: []*neo4j.Record{record("Jane Doe", "Widget", "")}}
	r := newTestServer(mockDriver)

	rec := get(r, "/providers/PI-123?type=products&type=life_science_firms")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, `[{"display_name":"Jane Doe","product_name":"Widget","life_science_firm_name":""}]`, rec.Body.String())
	assert.Equal(t, driver.ProviderWithProductsAndFirmsQuery, mockDriver.QueryExecuted)
	assert.Equal(t, "PI-123", mockDriver.QueryParams["id"])
	assert.Equal(t, int64(0), mockDriver.QueryParams["skip"])
	assert.Equal(t, int64(50), mockDriver.QueryParams["limit"])
}

func TestGetProviders_V2AliasAndPaging(t *testing.T) {
	mockDriver := &MockDriver{}
	r := newTestServer(mockDriver)

	rec := get(r, "/v2/providers/PI-123?type=life_science_firms&skip=10&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, driver.ProviderWithFirmsQuery, mockDriver.QueryExecuted)
	assert.Equal(t, int64(10), mockDriver.QueryParams["skip"])
	assert.Equal(t, int64(5), mockDriver.QueryParams["limit"])
}

func TestGetProviders_NoTypeKeepsSentinels(t *testing.T) {
	mockDriver := &MockDriver{Records: []*neo4j.Record{record("Jane Doe", "", "")}}
	r := newTestServer(mockDriver)

	rec := get(r, "/providers/PI-123")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["product_name"])
	assert.Equal(t, "", rows[0]["life_science_firm_name"])
	assert.Equal(t, driver.ProviderOnlyQuery, mockDriver.QueryExecuted)
}

func TestGetProviders_UnknownIDReturnsEmptyArray(t *testing.T) {
	r := newTestServer(&MockDriver{})

	rec := get(r, "/providers/PI-999?type=products&skip=3&limit=7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestGetProviders_InvalidPaging(t *testing.T) {
	r := newTestServer(&MockDriver{})

	for _, target := range []string{
		"/providers/PI-1?skip=abc",
		"/providers/PI-1?limit=-1",
		"/v1/providers/PI-1?skip=-5",
	} {
		rec := get(r, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetProviders_DriverError(t *testing.T) {
	r := newTestServer(&MockDriver{Err: errors.New("connection refused")})

	rec := get(r, "/providers/PI-1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to look up provider"}`, rec.Body.String())
}

func TestGetProvidersV1(t *testing.T) {
	mockDriver := &MockDriver{Records: []*neo4j.Record{record("Jane Doe", "Widget", "")}}
	r := newTestServer(mockDriver)

	rec := get(r, "/v1/providers/PI-123?type=anything")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"display_name":"Jane Doe","product_name":"Widget"}]`, rec.Body.String())
	assert.Equal(t, driver.ProviderWithProductsQuery, mockDriver.QueryExecuted)

	rec = get(r, "/v1/providers/PI-123?type=")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, driver.ProviderWithProductsQuery, mockDriver.QueryExecuted)

	rec = get(r, "/v1/providers/PI-123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, driver.ProviderOnlyQuery, mockDriver.QueryExecuted)
}

func TestHealth(t *testing.T) {
	rec := get(newTestServer(&MockDriver{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(newTestServer(&MockDriver{Err: errors.New("down")}), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestID(t *testing.T) {
	r := newTestServer(&MockDriver{})

	rec := get(r, "/providers/PI-1")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/providers/PI-1", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRequestMetrics(t *testing.T) {
	r := newTestServer(&MockDriver{})
	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/v1/providers/:id", "200")
	before := testutil.ToFloat64(counter)

	get(r, "/v1/providers/PI-1")
	get(r, "/v1/providers/PI-2")

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestServer(&MockDriver{})
	get(r, "/providers/PI-1")

	rec := get(r, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "provider_lookups_total")
}
