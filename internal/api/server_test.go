package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"txdash/internal/models"
)

func testReport() *models.Report {
	return &models.Report{
		Global: models.GlobalStats{
			TotalTransactions:      2,
			AvgFee:                 15,
			SuccessfulTransactions: 1,
			FirstSlot:              1,
			LastSlot:               1,
			TotalSlots:             1,
		},
		Hourly: []models.HourlyStats{
			{Hour: time.UnixMilli(0).UTC(), TransactionCount: 2, AvgFee: 15, SuccessfulCount: 1},
		},
		Accounts: []models.AccountStats{
			{Account: "A", TransactionCount: 2, SuccessfulTransactions: 1, SlotsParticipated: 1},
			{Account: "B", TransactionCount: 1, SuccessfulTransactions: 1, SlotsParticipated: 1},
		},
	}
}

func newTestServer(t *testing.T, report *models.Report) *Server {
	t.Helper()
	server, err := NewServer(report, zaptest.NewLogger(t))
	require.NoError(t, err)
	return server
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestSummaryHandler(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, testReport()), "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var summary Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, uint64(2), summary.TotalTransactions)
	assert.InDelta(t, 50.0, summary.SuccessRate, 0.0001)
	assert.InDelta(t, 15.0, summary.AvgFee, 0.0001)
}

func TestSummaryHandlerEmptyReport(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, &models.Report{}), "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Zero(t, summary.TotalTransactions)
	assert.Zero(t, summary.SuccessRate)
}

func TestHourlyHandler(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, testReport()), "/api/hourly")
	require.Equal(t, http.StatusOK, rec.Code)

	var hourly []models.HourlyStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hourly))
	require.Len(t, hourly, 1)
	assert.Equal(t, uint64(2), hourly[0].TransactionCount)
}

func TestAccountsHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		path         string
		expectedCode int
		expectedLen  int
	}{
		{name: "Default display window", path: "/api/accounts", expectedCode: http.StatusOK, expectedLen: 2},
		{name: "Narrowed window", path: "/api/accounts?limit=1", expectedCode: http.StatusOK, expectedLen: 1},
		{name: "Limit clamped to ranking size", path: "/api/accounts?limit=500", expectedCode: http.StatusOK, expectedLen: 2},
		{name: "Rejects zero limit", path: "/api/accounts?limit=0", expectedCode: http.StatusBadRequest},
		{name: "Rejects junk limit", path: "/api/accounts?limit=abc", expectedCode: http.StatusBadRequest},
	}

	server := newTestServer(t, testReport())
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := get(t, server, tt.path)
			require.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode != http.StatusOK {
				return
			}

			var accounts []models.AccountStats
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
			assert.Len(t, accounts, tt.expectedLen)
			if len(accounts) > 0 {
				assert.Equal(t, "A", accounts[0].Account)
			}
		})
	}
}

func TestDashboardHandler(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, testReport()), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Transaction Analytics")
	assert.Contains(t, rec.Body.String(), "50.00%")
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, testReport()), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
