package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditwatch/internal/ledger"
	"creditwatch/internal/report"
)

type stubStore struct {
	ds        *ledger.Dataset
	err       error
	age       time.Duration
	loaded    bool
	lastForce bool
}

func (s *stubStore) Snapshot(ctx context.Context, force bool) (*ledger.Dataset, error) {
	s.lastForce = force
	if s.ds == nil {
		return &ledger.Dataset{}, s.err
	}
	return s.ds, s.err
}

func (s *stubStore) Age() (time.Duration, bool) {
	return s.age, s.loaded
}

func testDataset() *ledger.Dataset {
	return &ledger.Dataset{
		Rows: []ledger.Row{
			{
				Client: "ACME", Payer: "ACME PAY",
				Gross: ledger.Num(1000), Balance: ledger.Num(500),
				AgreementDays: ledger.Num(10), MonthLabel: "06/2024",
			},
			{Client: "BETA", Gross: ledger.Num(50), MonthLabel: "06/2024"},
		},
		LoadedAt: time.Now(),
	}
}

func newTestServer(store SnapshotProvider) *Server {
	return New(store, report.Options{
		Now: func() time.Time { return time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC) },
	})
}

func TestClientsList(t *testing.T) {
	srv := newTestServer(&stubStore{ds: testDataset()})

	req := httptest.NewRequest(http.MethodGet, "/clients-list", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var names []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&names))
	assert.Equal(t, []string{"ACME", "BETA"}, names)
}

func TestClientsList_NothingLoaded(t *testing.T) {
	srv := newTestServer(&stubStore{err: errors.New("fetch failed")})

	req := httptest.NewRequest(http.MethodGet, "/clients-list", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestClient_OK(t *testing.T) {
	srv := newTestServer(&stubStore{ds: testDataset()})

	req := httptest.NewRequest(http.MethodGet, "/client?name=ACME", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var rep map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rep))
	assert.Equal(t, "ACME", rep["client"])
	assert.Equal(t, float64(15), rep["credit_days"])
	assert.Equal(t, float64(166.67), rep["collectible_amount"])
}

func TestClient_MissingName(t *testing.T) {
	srv := newTestServer(&stubStore{ds: testDataset()})

	req := httptest.NewRequest(http.MethodGet, "/client", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClient_NotFound(t *testing.T) {
	srv := newTestServer(&stubStore{ds: testDataset()})

	req := httptest.NewRequest(http.MethodGet, "/client?name=NOBODY", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClient_EmptyDataset(t *testing.T) {
	srv := newTestServer(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/client?name=ACME", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRefresh(t *testing.T) {
	store := &stubStore{ds: testDataset()}
	srv := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/refresh-data", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.lastForce)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "success", resp["status"])
}

func TestRefresh_Failure(t *testing.T) {
	srv := newTestServer(&stubStore{err: errors.New("network down")})

	req := httptest.NewRequest(http.MethodGet, "/refresh-data", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubStore{ds: testDataset(), age: 5 * time.Minute, loaded: true})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp healthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.DataLoaded)
	assert.Equal(t, 2, resp.Rows)
	assert.Equal(t, 300.0, resp.CacheAgeSeconds)
}

func TestHealth_Degraded(t *testing.T) {
	srv := newTestServer(&stubStore{err: errors.New("never loaded")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp healthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.False(t, resp.DataLoaded)
}

func TestIndexServesUI(t *testing.T) {
	srv := newTestServer(&stubStore{ds: testDataset()})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Client Credit Reports")
}
