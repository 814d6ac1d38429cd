package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/hongminglow/safeguard/internal/auth"
	"github.com/hongminglow/safeguard/internal/config"
	"github.com/hongminglow/safeguard/internal/logging"
	"github.com/hongminglow/safeguard/internal/models/dto"
	"github.com/hongminglow/safeguard/internal/storage/postgres"
	"github.com/hongminglow/safeguard/internal/users"
)

// TestAuthIntegration exercises the register/login endpoints against a live Postgres.
func TestAuthIntegration(t *testing.T) {
	if os.Getenv("RUN_AUTH_INTEGRATION") != "true" {
		t.Skip("set RUN_AUTH_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := postgres.NewUserStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	secret := mustGetEnv(t, "JWT_SECRET")
	issuer := mustGetEnv(t, "JWT_ISSUER")
	tokens := auth.NewTokenManager(secret, issuer, "HS256", config.TokenTTL)
	log := logging.Discard()

	r := chi.NewRouter()
	NewAuthHandler(users.NewService(store, tokens, log), tokens, log).Register(r)

	ts := httptest.NewServer(r)
	defer ts.Close()

	name := fmt.Sprintf("apitest_%d", time.Now().UnixNano())
	email := fmt.Sprintf("%s@example.com", name)
	password := fmt.Sprintf("Pass!%d", time.Now().UnixNano())

	requestRegister(t, ts.URL, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})

	loggedIn := requestLogin(t, ts.URL, email, password)
	if loggedIn.Email != email || loggedIn.Name != name {
		t.Fatalf("login mismatch: got %+v", loggedIn)
	}
	if strings.TrimSpace(loggedIn.Token) == "" {
		t.Fatal("login response missing token")
	}
	claims, err := tokens.Parse(loggedIn.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != loggedIn.ID {
		t.Fatalf("token subject = %q, want %q", claims.Subject, loggedIn.ID)
	}

	t.Logf("created user %s (id=%s) and successfully logged in", email, loggedIn.ID)
}

func requestRegister(t *testing.T, baseURL string, payload map[string]string) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal register payload: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/api/user/register", baseURL), bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build register request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
}

func requestLogin(t *testing.T, baseURL, email, password string) dto.LoginResponse {
	t.Helper()
	body, err := json.Marshal(dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		t.Fatalf("marshal login payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/api/user/login", baseURL), bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}

	var out dto.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out
}

func mustGetEnv(t *testing.T, key string) string {
	t.Helper()
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		t.Fatalf("%s is required", key)
	}
	return val
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
		"../../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
