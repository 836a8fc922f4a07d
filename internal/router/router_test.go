package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stackpulse/internal/testutil"
	"stackpulse/internal/utils"

	"github.com/gin-gonic/gin"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cache, err := utils.NewCache(8)
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	RegisterRoutes(r, testutil.NewDB(t), cache, 0)

	for _, path := range []string{
		"/healthz",
		"/api/topics/multithreading/pitfalls",
		"/api/topics/solvability/compare",
		"/api/topics/cooccurrence",
		"/api/tags",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d (%s)", path, w.Code, w.Body.String())
		}
	}
	if cache.Len() != 0 {
		t.Errorf("ttl 0 should disable caching, len=%d", cache.Len())
	}
}

func TestAPIResponsesAreGzipped(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, testutil.NewDB(t), nil, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/topics/cooccurrence", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("expected gzip encoding, got %q", w.Header().Get("Content-Encoding"))
	}
}
