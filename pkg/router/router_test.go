package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchWildcardRoute(t *testing.T) {
	tests := []struct {
		path, route string
		want        bool
	}{
		{"/api/v1/panels/top_cities", "/api/v1/panels/*", true},
		{"/api/v1/panels", "/api/v1/panels/*", false},
		{"/swagger/index.html", "/swagger/*", true},
		{"/swagger/a/b.js", "/swagger/*", true},
		{"/api/v1/charts/x.png", "/api/v1/panels/*", false},
		{"/a/b/c", "/a/*/c", true},
		{"/a/b/d", "/a/*/c", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchWildcardRoute(tt.path, tt.route), "%s vs %s", tt.path, tt.route)
	}
}

func TestDispatch(t *testing.T) {
	r := New()
	r.GET("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.GET("/items/*", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	r.POST("/reload", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/items/42", http.StatusAccepted},
		{http.MethodPost, "/items/42", http.StatusMethodNotAllowed},
		{http.MethodPost, "/health", http.StatusMethodNotAllowed},
		{http.MethodGet, "/missing", http.StatusNotFound},
		{http.MethodPost, "/reload", http.StatusCreated},
		{http.MethodGet, "/reload", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, rec.Code, "%s %s", tt.method, tt.path)
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	}
}

func TestDispatchKeepsIncomingRequestID(t *testing.T) {
	r := New()
	r.GET("/health", func(w http.ResponseWriter, _ *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
