package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/converter"
	"github.com/Coconhat/Currency-converter/pkg/provider"
	sessionweb "github.com/Coconhat/Currency-converter/webapi/session"
	"github.com/Coconhat/Currency-converter/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RateLimitTestSuite struct {
	suite.Suite
	app *fiber.App
}

func (s *RateLimitTestSuite) SetupTest() {
	cfg := testutils.TestConfig()
	cfg.RateLimit.MaxRequests = 5
	cfg.RateLimit.Window = time.Second
	a := testutils.NewTestApp(s.T(), &testutils.StubConverter{Rate: 1}, cfg)
	s.app = SetupApp(a)
}

func (s *RateLimitTestSuite) request(forwardedFor string) *http.Response {
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *RateLimitTestSuite) TestRateLimit() {
	for i := 0; i < 6; i++ {
		resp := s.request("")
		if i < 5 {
			s.Equal(fiber.StatusOK, resp.StatusCode, "Expected OK for request %d", i+1)
		} else {
			s.Equal(fiber.StatusTooManyRequests, resp.StatusCode, "Expected Too Many Requests for request %d", i+1)
			pd := testutils.DecodeProblem(s.T(), resp)
			s.Equal("rate limit exceeded", pd.Detail)
		}
	}

	time.Sleep(1100 * time.Millisecond)
	s.Equal(fiber.StatusOK, s.request("").StatusCode)
}

func (s *RateLimitTestSuite) TestRateLimitKeyedByForwardedFor() {
	for i := 0; i < 5; i++ {
		s.Equal(fiber.StatusOK, s.request("10.0.0.1, 192.168.0.1").StatusCode)
	}
	s.Equal(fiber.StatusTooManyRequests, s.request("10.0.0.1").StatusCode)
	s.Equal(fiber.StatusOK, s.request("10.0.0.2").StatusCode)
}

func TestRateLimitTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimitTestSuite))
}

func TestRoot(t *testing.T) {
	a := testutils.NewTestApp(t, &testutils.StubConverter{Rate: 1}, nil)
	resp := testutils.MakeRequest(t, SetupApp(a), fiber.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "running")
}

func TestHealth(t *testing.T) {
	healthy := &testutils.StubConverter{Rate: 1}
	resp := testutils.MakeRequest(t, SetupApp(testutils.NewTestApp(t, healthy, nil)), fiber.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env := testutils.DecodeResponse[map[string]string](t, resp)
	assert.Equal(t, "stub", env.Data["provider"])

	down := &testutils.StubConverter{HealthErr: fmt.Errorf("%w: connection refused", provider.ErrNetworkFailure)}
	resp = testutils.MakeRequest(t, SetupApp(testutils.NewTestApp(t, down, nil)), fiber.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	pd := testutils.DecodeProblem(t, resp)
	assert.Contains(t, pd.Detail, "connection refused")
}

func TestSwaggerDoc(t *testing.T) {
	a := testutils.NewTestApp(t, &testutils.StubConverter{}, nil)
	resp := testutils.MakeRequest(t, SetupApp(a), fiber.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "Currency Converter API", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/api/convert")
	assert.Contains(t, doc.Paths["/api/sessions/{id}"], "patch")
	assert.Contains(t, doc.Paths, "/api/sessions/{id}/swap")
}

func TestUnknownRoute(t *testing.T) {
	a := testutils.NewTestApp(t, &testutils.StubConverter{}, nil)
	resp := testutils.MakeRequest(t, SetupApp(a), fiber.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	pd := testutils.DecodeProblem(t, resp)
	assert.Equal(t, "Not Found", pd.Title)
}

func TestSessionFlowUpdatesStats(t *testing.T) {
	conv := &testutils.StubConverter{Rate: 0.9235}
	a := testutils.NewTestApp(t, conv, nil)
	app := SetupApp(a)

	resp := testutils.MakeRequest(t, app, fiber.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := testutils.DecodeResponse[sessionweb.SessionResponse](t, resp).Data

	resp = testutils.MakeRequest(t, app, fiber.MethodPatch, "/api/sessions/"+created.ID.String(), `{"amount":"100"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Eventually(t, func() bool {
		resp := testutils.MakeRequest(t, app, fiber.MethodGet, "/api/sessions/"+created.ID.String(), "")
		got := testutils.DecodeResponse[sessionweb.SessionResponse](t, resp).Data
		return got.Display.Target == "€92.35 EUR"
	}, 2*time.Second, 10*time.Millisecond)

	resp = testutils.MakeRequest(t, app, fiber.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := testutils.DecodeResponse[StatsResponse](t, resp).Data
	assert.Equal(t, converter.StatsSnapshot{Requested: 1, Succeeded: 1}, stats.Conversions)
	assert.Equal(t, 1, stats.Sessions)
	assert.Equal(t, 17, stats.Currencies)
	assert.Equal(t, "stub", stats.Provider)
}

func TestSessionFailureIsNotSurfaced(t *testing.T) {
	conv := &testutils.StubConverter{Err: errors.Join(provider.ErrNetworkFailure, errors.New("503"))}
	a := testutils.NewTestApp(t, conv, nil)
	app := SetupApp(a)

	resp := testutils.MakeRequest(t, app, fiber.MethodPost, "/api/sessions", "")
	created := testutils.DecodeResponse[sessionweb.SessionResponse](t, resp).Data
	testutils.MakeRequest(t, app, fiber.MethodPatch, "/api/sessions/"+created.ID.String(), `{"amount":"100"}`)

	resp = testutils.MakeRequest(t, app, fiber.MethodGet, "/api/sessions/"+created.ID.String()+"?flush=true", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := testutils.DecodeResponse[sessionweb.SessionResponse](t, resp).Data
	assert.False(t, got.State.IsLoading)
	assert.Equal(t, "€0.00 EUR", got.Display.Target)
	assert.Equal(t, converter.StatsSnapshot{Requested: 1, Failed: 1}, a.Stats.Snapshot())
}
