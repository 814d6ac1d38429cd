package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/safeguard/internal/config"
	"github.com/hongminglow/safeguard/internal/logging"
	"github.com/hongminglow/safeguard/internal/server"
	"github.com/hongminglow/safeguard/internal/storage/memory"
)

func newAPI(t *testing.T) *Client {
	t.Helper()
	cfg := config.Config{
		JWTSecret:        "client-test",
		JWTIssuer:        "safeguard-test",
		JWTSigningMethod: "HS256",
		JWTTTL:           time.Hour,
		CORSOrigins:      []string{"*"},
	}
	ts := httptest.NewServer(server.NewRouter(cfg, memory.NewUserStore(), logging.Discard()))
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", nil)
}

func TestClient_RegisterLoginMe(t *testing.T) {
	api := newAPI(t)
	ctx := context.Background()

	msg, err := api.Register(ctx, "Ann", "ann@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg)

	_, err = api.Register(ctx, "Ann", "ann@x.com", "secret123")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "User already exists", apiErr.Message)

	_, err = api.Login(ctx, "ann@x.com", "wrong")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	login, err := api.Login(ctx, "ann@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", login.Email)
	assert.NotEmpty(t, login.Token)

	me, err := api.Me(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, login.ID, me.ID)
	assert.Equal(t, "Ann", me.Name)

	_, err = api.Me(ctx, "garbage")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClient_NonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).Login(context.Background(), "a@x.com", "p")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
