package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestRouter_Health tests the health check endpoint
func TestRouter_Health(t *testing.T) {
	r := SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("expected body 'OK', got '%s'", rec.Body.String())
	}
}

// TestRouter_Metrics tests that the Prometheus endpoint is mounted
func TestRouter_Metrics(t *testing.T) {
	r := SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}
