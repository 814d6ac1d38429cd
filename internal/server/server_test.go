package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/safeguard/internal/config"
	"github.com/hongminglow/safeguard/internal/logging"
	"github.com/hongminglow/safeguard/internal/storage/memory"
)

func testConfig() config.Config {
	return config.Config{
		Port:             "0",
		StorageDriver:    config.DriverMemory,
		JWTSecret:        "test-secret",
		JWTIssuer:        "safeguard-test",
		JWTSigningMethod: "HS256",
		JWTTTL:           time.Hour,
		CORSOrigins:      []string{"*"},
	}
}

func TestRouter_HealthAndFallbacks(t *testing.T) {
	ts := httptest.NewServer(NewRouter(testConfig(), memory.NewUserStore(), logging.Discard()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["storage"])

	resp, err = http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/user/login")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouter_RegisterThroughFullStack(t *testing.T) {
	ts := httptest.NewServer(NewRouter(testConfig(), memory.NewUserStore(), logging.Discard()))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/user/register", "application/json",
		strings.NewReader(`{"name":"Ann","email":"ann@x.com","password":"secret123"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestNew_UsesConfiguredAddress(t *testing.T) {
	cfg := testConfig()
	cfg.Port = "5055"
	s := New(cfg, memory.NewUserStore(), logging.Discard())
	assert.Equal(t, ":5055", s.inner.Addr)
}
