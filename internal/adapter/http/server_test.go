package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/slopewise/avalanche-advisory/internal/adapter/http"
	"github.com/slopewise/avalanche-advisory/internal/advisory"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockBuilder struct {
	advisory advisory.Advisory
	err      error
	zone     string
}

func (m *mockBuilder) BuildAdvisory(_ context.Context, zone string) (advisory.Advisory, error) {
	m.zone = zone
	if m.err != nil {
		return advisory.Advisory{}, m.err
	}
	return m.advisory, nil
}

type mockFlags struct {
	flags map[string]bool
}

func (m *mockFlags) Enabled(_ context.Context, name string) bool { return m.flags[name] }

func newTestServer(builder *mockBuilder, flags map[string]bool, readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", builder, &mockFlags{flags: flags}, &mockReadiness{err: readyErr}, slog.Default())
}

func TestAdvisoryEndpoint(t *testing.T) {
	t.Run("returns the built advisory", func(t *testing.T) {
		builder := &mockBuilder{advisory: advisory.Advisory{
			Zone:        "bridger",
			GeneratedAt: time.Date(2026, 2, 10, 17, 0, 0, 0, time.UTC),
		}}
		srv := newTestServer(builder, nil, nil)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/zones/bridger/advisory", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "bridger", builder.zone)

		var body advisory.Advisory
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "bridger", body.Zone)
	})

	t.Run("unknown zone returns 404", func(t *testing.T) {
		builder := &mockBuilder{err: fmt.Errorf("zone %q: %w", "nowhere", advisory.ErrNoForecasts)}
		srv := newTestServer(builder, nil, nil)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/zones/nowhere/advisory", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure returns 500", func(t *testing.T) {
		builder := &mockBuilder{err: errors.New("connection refused")}
		srv := newTestServer(builder, nil, nil)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/zones/bridger/advisory", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("maintenance mode returns 503 without building", func(t *testing.T) {
		builder := &mockBuilder{}
		srv := newTestServer(builder, map[string]bool{"maintenance_mode": true}, nil)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/zones/bridger/advisory", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Empty(t, builder.zone)
	})
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockBuilder{}, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockBuilder{}, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockBuilder{}, nil, fmt.Errorf("store unreachable"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "store unreachable", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockBuilder{}, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
