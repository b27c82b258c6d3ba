package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/propagation"
)

func testDeps(t *testing.T, prefix string) Deps {
	t.Helper()
	return Deps{
		Paths:      artifact.NewPath(t.TempDir()),
		Engine:     propagation.NewEngine(nil, 4, 4, nil),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		PathPrefix: prefix,
	}
}

func TestVersionHandlerReturnsFixedResponse(t *testing.T) {
	router := NewRouter(testDeps(t, ""))

	req := httptest.NewRequest(http.MethodGet, "/version.pl", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	want := "4.22\nNo info for version  4.22\n\n"
	if rec.Body.String() != want {
		t.Fatalf("body = %q, want %q", rec.Body.String(), want)
	}
	if len(rec.Body.Bytes()) != 32 {
		t.Fatalf("body length = %d, want 32", len(rec.Body.Bytes()))
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := NewRouter(testDeps(t, ""))

	req := httptest.NewRequest(http.MethodGet, "/no-such-endpoint", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestMountPrefixIsStripped(t *testing.T) {
	router := NewRouter(testDeps(t, "/ham/HamClock"))

	req := httptest.NewRequest(http.MethodGet, "/ham/HamClock/version.pl", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 after prefix strip", rec.Code)
	}
}
