package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klicks/internal/config"
	"klicks/internal/game"
	"klicks/internal/sessions"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type scriptRand struct {
	ints   []int64
	floats []float64
}

func (r *scriptRand) Int63n(n int64) int64 {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 1
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func newTestServer(t *testing.T, clk game.Clock, rnd game.Rand) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.AdminToken = "sekrit"
	engine, err := game.NewEngine(
		cfg.Rules(), cfg.TierTable(), cfg.BusinessCatalog(), cfg.VehicleCatalog(), nil,
		game.WithClock(clk), game.WithRand(rnd),
	)
	require.NoError(t, err)
	return New(cfg, nil, engine, sessions.NewStore())
}

func doRequest(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func startSession(t *testing.T, s *Server) string {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, "/v1/session", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var out struct {
		Token   string       `json:"token"`
		Profile game.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	require.Equal(t, "Hobo", out.Profile.Tier)
	return out.Token
}

func grant(t *testing.T, s *Server, sessionToken string, amount int64) {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, "/v1/admin/grant", "sekrit", map[string]any{
		"session_token": sessionToken,
		"kind":          "currency",
		"amount":        amount,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSessionAuth(t *testing.T) {
	s := newTestServer(t, &fakeClock{now: time.Unix(1_700_000_000, 0)}, &scriptRand{})
	token := startSession(t, s)

	rec := doRequest(t, s, http.MethodGet, "/v1/profile", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/v1/profile", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClickAndCooldown(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	s := newTestServer(t, clk, &scriptRand{})
	token := startSession(t, s)

	rec := doRequest(t, s, http.MethodPost, "/v1/click", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out game.ClickResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.GreaterOrEqual(t, out.Earned, int64(500))
	assert.LessOrEqual(t, out.Earned, int64(2500))

	rec = doRequest(t, s, http.MethodPost, "/v1/click", token, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	clk.now = clk.now.Add(time.Second)
	rec = doRequest(t, s, http.MethodPost, "/v1/click", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPurchaseFlow(t *testing.T) {
	s := newTestServer(t, &fakeClock{now: time.Unix(1_700_000_000, 0)}, &scriptRand{})
	token := startSession(t, s)
	grant(t, s, token, 500000)

	rec := doRequest(t, s, http.MethodPost, "/v1/businesses/1/buy", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out game.PurchaseResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(0), out.Balance)

	grant(t, s, token, 500000)
	rec = doRequest(t, s, http.MethodPost, "/v1/businesses/1/buy", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/v1/businesses/99/buy", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/v1/income/collect", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var collected game.CollectResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collected))
	assert.Equal(t, int64(50000), collected.Collected)
}

func TestCollectWithoutIncome(t *testing.T) {
	s := newTestServer(t, &fakeClock{now: time.Unix(1_700_000_000, 0)}, &scriptRand{})
	token := startSession(t, s)

	rec := doRequest(t, s, http.MethodPost, "/v1/income/collect", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWagerEndpoint(t *testing.T) {
	rnd := &scriptRand{floats: []float64{0.0}}
	s := newTestServer(t, &fakeClock{now: time.Unix(1_700_000_000, 0)}, rnd)
	token := startSession(t, s)
	grant(t, s, token, 100000)

	rec := doRequest(t, s, http.MethodPost, "/v1/wager", token, map[string]any{"amount": 100000})
	require.Equal(t, http.StatusOK, rec.Code)
	var out game.WagerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Won)
	assert.Equal(t, int64(50000), out.Delta)
	assert.Equal(t, int64(150000), out.Balance)

	rec = doRequest(t, s, http.MethodPost, "/v1/wager", token, map[string]any{"amount": 999999999})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminAuth(t *testing.T) {
	s := newTestServer(t, &fakeClock{now: time.Unix(1_700_000_000, 0)}, &scriptRand{})
	token := startSession(t, s)

	for _, adminToken := range []string{"", "wrong"} {
		rec := doRequest(t, s, http.MethodPost, "/v1/admin/grant", adminToken, map[string]any{
			"session_token": token,
			"kind":          "currency",
			"amount":        int64(100),
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := doRequest(t, s, http.MethodPost, "/v1/admin/grant", "sekrit", map[string]any{
		"session_token": "unknown",
		"kind":          "currency",
		"amount":        int64(100),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/v1/admin/grant", "sekrit", map[string]any{
		"session_token": token,
		"kind":          "tier",
		"tier":          "VIP",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var out game.GrantResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "VIP", out.Tier)

	rec = doRequest(t, s, http.MethodPost, "/v1/admin/grant", "sekrit", map[string]any{
		"session_token": token,
		"kind":          "currency",
		"amount":        int64(-5),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	s := newTestServer(t, clk, &scriptRand{})
	token := startSession(t, s)

	require.Equal(t, http.StatusOK, doRequest(t, s, http.MethodPost, "/v1/click", token, nil).Code)

	rec := doRequest(t, s, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "klicks_clicks_total 1")
	assert.Contains(t, body, "klicks_sessions_started_total 1")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &fakeClock{}, &scriptRand{})
	rec := doRequest(t, s, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}
