package register

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"relay/ticket/pkg/logticket/impl"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		h    *RegisterHandler
		want string
	}{
		{"no service", &RegisterHandler{}, `{"convex_configured":false,"message":"ok"}`},
		{"unconfigured", &RegisterHandler{tickets: impl.NewForwarder("", nil)}, `{"convex_configured":false,"message":"ok"}`},
		{"malformed url", &RegisterHandler{tickets: impl.NewForwarder("happy-otter", nil)}, `{"convex_configured":false,"message":"ok"}`},
		{"configured", &RegisterHandler{tickets: impl.NewForwarder("https://happy-otter-123.convex.site", nil)}, `{"convex_configured":true,"message":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			tt.h.Register(r)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Errorf("unexpected content type %q", ct)
			}
			if w.Body.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, w.Body.String())
			}
		})
	}
}
