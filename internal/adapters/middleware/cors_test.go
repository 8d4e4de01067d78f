package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		expectCode  int
		expectAllow string
	}{
		{"allowed_origin", []string{"https://a.example"}, http.MethodPost, "https://a.example", http.StatusTeapot, "https://a.example"},
		{"unknown_origin", []string{"https://a.example"}, http.MethodPost, "https://b.example", http.StatusTeapot, ""},
		{"wildcard", []string{"*"}, http.MethodGet, "https://b.example", http.StatusTeapot, "https://b.example"},
		{"preflight", []string{"https://a.example"}, http.MethodOptions, "https://a.example", http.StatusNoContent, "https://a.example"},
		{"no_origin", []string{"*"}, http.MethodGet, "", http.StatusTeapot, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/students/register", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORSMiddleware(tt.allowed)(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectCode {
				t.Errorf("expected %d, got %d", tt.expectCode, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.expectAllow {
				t.Errorf("expected allow-origin %q, got %q", tt.expectAllow, got)
			}
		})
	}
}
