package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"clinch-calc/internal/api/middleware"
	"clinch-calc/internal/api/models"
	"clinch-calc/internal/config"
	"clinch-calc/internal/montecarlo"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const raceBody = `{
	"leader_name": "Inter",
	"chaser_name": "Milan",
	"points_leader": 60,
	"points_chaser": "55",
	"remaining": 5,
	"ppg_leader": "2,0",
	"ppg_chaser": 1
}`

func testServer(secret, staticDir string) *config.Server {
	return &config.Server{
		AllowedOrigins: []string{"*"},
		ProTokenSecret: secret,
		MaxRemaining:   500,
		DefaultTrials:  1000,
		MaxTrials:      5000,
		Workers:        2,
		CacheTTL:       time.Minute,
		CacheSize:      8,
		StaticDir:      staticDir,
	}
}

func newTestRouter(secret string) *gin.Engine {
	return NewRouter(testServer(secret, ""), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(t *testing.T, r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(""), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestClinchEndpoint(t *testing.T) {
	w := do(t, newTestRouter(""), http.MethodPost, "/api/v1/clinch", raceBody, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.ClinchResponse](t, w)
	assert.Equal(t, "Inter", resp.Scenario.LeaderName)
	assert.Equal(t, 2.0, resp.Scenario.PpgLeader)
	assert.Equal(t, "leader", string(resp.Summary.Winner))
	assert.Equal(t, "Inter", resp.Summary.WinnerName)
	assert.Equal(t, "CLINCHED", string(resp.Summary.Status))
	require.NotNil(t, resp.Summary.WinnerClinchK)
	assert.Equal(t, 3, *resp.Summary.WinnerClinchK)
	require.NotNil(t, resp.Summary.ContestsFromEnd)
	assert.Equal(t, 2, *resp.Summary.ContestsFromEnd)
	assert.Len(t, resp.Rows, 6)
	assert.False(t, resp.Truncated)
	assert.Equal(t, 6, resp.TotalRows)
}

func TestClinchFreeTierTruncates(t *testing.T) {
	r := newTestRouter("s3cret")

	w := do(t, r, http.MethodPost, "/api/v1/clinch", raceBody, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ClinchResponse](t, w)
	assert.Len(t, resp.Rows, 4)
	assert.True(t, resp.Truncated)
	assert.Equal(t, 6, resp.TotalRows)
	require.NotNil(t, resp.Summary.WinnerClinchK)
	assert.Equal(t, 3, *resp.Summary.WinnerClinchK)

	token, err := middleware.SignProToken(true, []byte("s3cret"))
	require.NoError(t, err)
	w = do(t, r, http.MethodPost, "/api/v1/clinch", raceBody, token)
	resp = decode[models.ClinchResponse](t, w)
	assert.Len(t, resp.Rows, 6)
	assert.False(t, resp.Truncated)

	w = do(t, r, http.MethodPost, "/api/v1/clinch", raceBody, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProEndpointsRequirePro(t *testing.T) {
	r := newTestRouter("s3cret")
	for _, path := range []string{"/api/v1/clinch/csv", "/api/v1/sensitivity", "/api/v1/presets", "/api/v1/montecarlo"} {
		w := do(t, r, http.MethodPost, path, raceBody, "")
		assert.Equal(t, http.StatusPaymentRequired, w.Code, path)
		assert.Contains(t, w.Body.String(), "PRO_REQUIRED", path)
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		code   string
		field  string
		reason string
	}{
		{
			name:   "rate above max",
			body:   `{"points_leader": 60, "points_chaser": 55, "remaining": 5, "ppg_leader": "3,5", "ppg_chaser": 1}`,
			code:   "VALIDATION_ERROR",
			field:  "ppg_leader",
			reason: "invalid-leader-rate",
		},
		{
			name:   "fractional remaining",
			body:   `{"points_leader": 60, "points_chaser": 55, "remaining": 4.5, "ppg_leader": 2, "ppg_chaser": 1}`,
			code:   "VALIDATION_ERROR",
			field:  "remaining",
			reason: "invalid-remaining",
		},
		{
			name:   "missing points",
			body:   `{"points_chaser": 55, "remaining": 5, "ppg_leader": 2, "ppg_chaser": 1}`,
			code:   "VALIDATION_ERROR",
			field:  "points_leader",
			reason: "invalid-leader-points",
		},
		{
			name:   "remaining above server cap",
			body:   `{"points_leader": 60, "points_chaser": 55, "remaining": 1000, "ppg_leader": 2, "ppg_chaser": 1}`,
			code:   "VALIDATION_ERROR",
			field:  "remaining",
			reason: "remaining-too-large",
		},
		{
			name: "malformed json",
			body: `{"points_leader": [1]}`,
			code: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestRouter(""), http.MethodPost, "/api/v1/clinch", tt.body, "")
			require.Equal(t, http.StatusBadRequest, w.Code)

			resp := decode[models.ErrorResponse](t, w)
			assert.Equal(t, tt.code, resp.Error.Code)
			if tt.field != "" {
				assert.Equal(t, tt.field, resp.Error.Details["field"])
				assert.Equal(t, tt.reason, resp.Error.Details["reason"])
			}
		})
	}
}

func TestClinchCSV(t *testing.T) {
	w := do(t, newTestRouter(""), http.MethodPost, "/api/v1/clinch/csv", raceBody, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "clinch-trace.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "step,k,r,"))
}

func TestSensitivityEndpoint(t *testing.T) {
	w := do(t, newTestRouter(""), http.MethodPost, "/api/v1/sensitivity", raceBody, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.SensitivityResponse](t, w)
	assert.Len(t, resp.Cells, 81)
	assert.Equal(t, 9, resp.Side)
	assert.InDelta(t, 1.6, resp.Cells[0].PpgLeader, 1e-9)
	assert.InDelta(t, 0.6, resp.Cells[0].PpgChaser, 1e-9)
}

func TestPresetsEndpoint(t *testing.T) {
	w := do(t, newTestRouter(""), http.MethodPost, "/api/v1/presets", raceBody, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.PresetsResponse](t, w)
	require.Len(t, resp.Results, 10)
	require.Len(t, resp.Ranking, 10)
	assert.Equal(t, "Base", resp.Results[0].Label)
	require.NotNil(t, resp.Ranking[0].WinnerClinchK)
	for _, r := range resp.Ranking[1:] {
		if r.WinnerClinchK != nil {
			assert.GreaterOrEqual(t, *r.WinnerClinchK, *resp.Ranking[0].WinnerClinchK)
		}
	}
}

func TestMonteCarloEndpoint(t *testing.T) {
	body := strings.TrimSuffix(raceBody, "}") + `, "volatility": 0, "trials": 100, "seed": 7}`
	w := do(t, newTestRouter(""), http.MethodPost, "/api/v1/montecarlo", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.MonteCarloResponse](t, w)
	assert.Equal(t, uint64(7), resp.Seed)
	require.NotNil(t, resp.Curve)
	assert.Equal(t, 100, resp.Curve.Trials)
	require.Len(t, resp.Curve.Leader, 5)
	assert.Equal(t, 0.0, resp.Curve.Leader[1].Probability)
	assert.Equal(t, 100.0, resp.Curve.Leader[2].Probability)
	assert.Equal(t, 0, resp.Curve.Undecided)
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestMonteCarloCachesSeededRuns(t *testing.T) {
	r := newTestRouter("")
	body := strings.TrimSuffix(raceBody, "}") + `, "volatility": 0.8, "trials": 300, "seed": 11}`

	first := do(t, r, http.MethodPost, "/api/v1/montecarlo", body, "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := do(t, r, http.MethodPost, "/api/v1/montecarlo", body, "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestMonteCarloDefaultsAndLimits(t *testing.T) {
	r := newTestRouter("")

	w := do(t, r, http.MethodPost, "/api/v1/montecarlo", strings.TrimSuffix(raceBody, "}")+`, "volatility": 0.3, "seed": 1}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1000, decode[models.MonteCarloResponse](t, w).Curve.Trials)

	w = do(t, r, http.MethodPost, "/api/v1/montecarlo", strings.TrimSuffix(raceBody, "}")+`, "volatility": 0.3, "trials": 50}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.LessOrEqual(t, decode[models.MonteCarloResponse](t, w).Seed, uint64(montecarlo.MaxSeed))

	for name, extra := range map[string]string{
		"volatility": `, "volatility": 2}`,
		"trials":     `, "volatility": 0.5, "trials": 6000}`,
		"negative":   `, "volatility": 0.5, "trials": -1}`,
	} {
		w := do(t, r, http.MethodPost, "/api/v1/montecarlo", strings.TrimSuffix(raceBody, "}")+extra, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR", name)
	}
}

func TestShareRoundTrip(t *testing.T) {
	r := newTestRouter("")

	w := do(t, r, http.MethodPost, "/api/v1/share", raceBody, "")
	require.Equal(t, http.StatusOK, w.Code)
	query := decode[models.ShareResponse](t, w).Query
	assert.Contains(t, query, "ph=60")
	assert.Contains(t, query, "mh=2")

	w = do(t, r, http.MethodGet, "/api/v1/share?"+query, "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.ClinchResponse](t, w)
	assert.Equal(t, "Milan", resp.Scenario.ChaserName)
	assert.Equal(t, "leader", string(resp.Summary.Winner))

	w = do(t, r, http.MethodGet, "/api/v1/share?h=A&a=B&ph=x", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>clinch</html>"), 0o644))
	r := NewRouter(testServer("", dir), slog.New(slog.NewTextHandler(io.Discard, nil)))

	w := do(t, r, http.MethodGet, "/race/inter-milan", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "clinch")

	w = do(t, r, http.MethodGet, "/api/v1/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
