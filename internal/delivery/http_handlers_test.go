package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"adprofit/internal/infrastructure"
	"adprofit/internal/usecase"
	"adprofit/pkg/logger"
	"adprofit/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Collectors register against the default prometheus registry, so the test
// binary builds the whole stack exactly once.
var testRouter *gin.Engine

func init() {
	log := logger.New("error")
	m := metrics.New()
	repo := infrastructure.NewAnalysisRepository(log)
	analysisService := usecase.NewAnalysisService(repo, log, m, 100)
	ingestService := usecase.NewIngestService(log, m, 7)
	handlers := NewHTTPHandlers(analysisService, ingestService, log)
	testRouter = NewHTTPRouter(handlers, log, m, 10*time.Second, 1000).SetupRoutes()
}

func doRequest(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if strings.HasPrefix(body, "{") {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	testRouter.ServeHTTP(recorder, req)

	var payload map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	}
	return recorder, payload
}

const baselineBody = `{
	"gmv": 1000,
	"items_sold": 20,
	"investment": 100,
	"product_cost": 10,
	"tax_percent": 4,
	"emitted_percent": 100,
	"operational_cost": 2,
	"commission_percent": 20,
	"fixed_cost_per_item": 4
}`

func TestCalculateEndpoint(t *testing.T) {
	recorder, payload := doRequest(t, http.MethodPost, "/api/v1/analysis/calculate", baselineBody)

	require.Equal(t, http.StatusOK, recorder.Code)
	results, ok := payload["results"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 50, results["pv_real"].(float64), 1e-9)
	assert.InDelta(t, 17, results["profit_per_item"].(float64), 1e-9)
	assert.InDelta(t, 10, results["roas"].(float64), 1e-9)
	assert.NotEmpty(t, payload["request_id"])
}

func TestCalculateEndpointRejectsZeroItems(t *testing.T) {
	body := strings.Replace(baselineBody, `"items_sold": 20`, `"items_sold": 0`, 1)

	recorder, payload := doRequest(t, http.MethodPost, "/api/v1/analysis/calculate", body)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, payload["message"], "items sold")
}

func TestCalculateEndpointRejectsMalformedBody(t *testing.T) {
	recorder, _ := doRequest(t, http.MethodPost, "/api/v1/analysis/calculate", `{"gmv": "oops"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDiagnoseAndFetchRoundTrip(t *testing.T) {
	body := strings.TrimSuffix(baselineBody, "\n}") + `,
	"roas_target": 8,
	"daily_budget": null,
	"has_monthly_budget": false,
	"impressions": 5000,
	"clicks": 200,
	"recent_events": 0
}`

	recorder, payload := doRequest(t, http.MethodPost, "/api/v1/analysis/diagnose", body)
	require.Equal(t, http.StatusOK, recorder.Code)

	analysis, ok := payload["analysis"].(map[string]any)
	require.True(t, ok)
	diagnostic, ok := analysis["diagnostic"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, diagnostic["scenario"])
	assert.Equal(t, "excellent", diagnostic["status"])

	id, ok := analysis["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)

	recorder, payload = doRequest(t, http.MethodGet, "/api/v1/analysis/"+id, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	fetched := payload["analysis"].(map[string]any)
	assert.Equal(t, id, fetched["id"])

	recorder, payload = doRequest(t, http.MethodGet, "/api/v1/analysis?limit=10", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.GreaterOrEqual(t, payload["total"].(float64), 1.0)
}

func TestGetAnalysisNotFound(t *testing.T) {
	recorder, _ := doRequest(t, http.MethodGet, "/api/v1/analysis/nope", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestIngestPerformanceEndpoint(t *testing.T) {
	report := strings.Join([]string{
		"impressions,clicks,units sold,revenue,spend",
		"1000,50,5,500.00,100.00",
	}, "\n")

	recorder, payload := doRequest(t, http.MethodPost, "/api/v1/reports/performance", report)

	require.Equal(t, http.StatusOK, recorder.Code)
	totals := payload["totals"].(map[string]any)
	assert.EqualValues(t, 1000, totals["impressions"])
	assert.EqualValues(t, 5, totals["items_sold"])
}

func TestIngestPerformanceEndpointBadReport(t *testing.T) {
	recorder, _ := doRequest(t, http.MethodPost, "/api/v1/reports/performance", "no,usable,header\n1,2,3")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHealthEndpoint(t *testing.T) {
	recorder, payload := doRequest(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "healthy", payload["status"])
}
