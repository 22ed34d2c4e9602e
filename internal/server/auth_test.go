package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthMiddleware_Disabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := AuthMiddleware("", next)

	req := httptest.NewRequest("GET", "/v1/current", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with auth disabled, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Enabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := AuthMiddleware("secret-token", next)

	for _, tc := range []struct {
		name   string
		path   string
		header string
		code   int
	}{
		{"MissingHeader", "/v1/current", "", http.StatusUnauthorized},
		{"WrongScheme", "/v1/current", "Basic secret-token", http.StatusUnauthorized},
		{"WrongToken", "/v1/current", "Bearer wrong", http.StatusUnauthorized},
		{"ValidToken", "/v1/current", "Bearer secret-token", http.StatusOK},
		{"HealthExempt", "/v1/health", "", http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d; body: %s", tc.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_HealthExemptOnlyGET(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := AuthMiddleware("secret-token", next)

	req := httptest.NewRequest("POST", "/v1/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for POST /v1/health without token, got %d", rec.Code)
	}
}
