package main_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Coconhat/Currency-converter/webapi"
	"github.com/Coconhat/Currency-converter/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func TestStartServer_RootRoute(t *testing.T) {
	app := webapi.SetupApp(testutils.NewTestApp(t, &testutils.StubConverter{Rate: 1}, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNotFoundRoute(t *testing.T) {
	app := webapi.SetupApp(testutils.NewTestApp(t, &testutils.StubConverter{Rate: 1}, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/account", nil))
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
