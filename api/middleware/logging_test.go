package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mherran/stockroute-backend/pkg/logger"
)

func TestLoggingPassesResponseThrough(t *testing.T) {
	var buf strings.Builder
	logg := logger.New(logger.Options{ServiceName: "test", Output: &buf})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	Logging(logg)(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if resp.Body.String() != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}

	logs := buf.String()
	if !strings.Contains(logs, "request.complete") {
		t.Fatalf("expected completion log, got: %s", logs)
	}
	if !strings.Contains(logs, "201") {
		t.Fatalf("expected logged status 201, got: %s", logs)
	}
}

func TestLoggingDefaultsImplicitStatus(t *testing.T) {
	var buf strings.Builder
	logg := logger.New(logger.Options{ServiceName: "test", Output: &buf})

	// Handler writes the body without an explicit WriteHeader.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	Logging(logg)(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(buf.String(), "200") {
		t.Fatalf("expected logged status 200, got: %s", buf.String())
	}
}
