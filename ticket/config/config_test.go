package config

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"CONVEX_DEPLOYMENT", "PORT", "LOG_LEVEL", "LOG_FORMAT", "FORWARD_TIMEOUT", "LOCAL_API_URL", "PRODUCTION_API_URL"} {
		t.Setenv(key, "")
	}

	c, err := loadFromEnv()
	if err != nil {
		t.Fatalf("missing convex url must not fail startup: %v", err)
	}
	if c.ConvexURL != "" {
		t.Errorf("expected empty convex url, got %q", c.ConvexURL)
	}
	if c.Port != "8080" || c.Address() != ":8080" {
		t.Errorf("unexpected port %q", c.Port)
	}
	if c.LocalAPIURL != "http://localhost:5000" {
		t.Errorf("unexpected local api url %q", c.LocalAPIURL)
	}
	if c.ProductionAPIURL != "" {
		t.Errorf("unexpected production api url %q", c.ProductionAPIURL)
	}
	if c.ForwardTimeout != 10*time.Second {
		t.Errorf("unexpected forward timeout %v", c.ForwardTimeout)
	}
	if c.Application == nil {
		t.Error("application must be initialised")
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("CONVEX_DEPLOYMENT", " https://happy-otter-123.convex.site ")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("FORWARD_TIMEOUT", "0")
	t.Setenv("PRODUCTION_API_URL", "https://printer.example.trycloudflare.com")

	c, err := loadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ConvexURL != "https://happy-otter-123.convex.site" {
		t.Errorf("expected trimmed convex url, got %q", c.ConvexURL)
	}
	if c.LogLevel != "debug" || c.LogFormat != "json" {
		t.Errorf("unexpected log config %q/%q", c.LogLevel, c.LogFormat)
	}
	if c.ClientOptions().Timeout != 0 {
		t.Errorf("expected timeout disabled, got %v", c.ClientOptions().Timeout)
	}
	if c.ProductionAPIURL != "https://printer.example.trycloudflare.com" {
		t.Errorf("unexpected production url %q", c.ProductionAPIURL)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"non numeric port", "PORT", "http", "Port"},
		{"unknown log level", "LOG_LEVEL", "verbose", "LogLevel must be one of"},
		{"local api not a url", "LOCAL_API_URL", "localhost", "LocalAPIURL must be an absolute URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := loadFromEnv()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

// 非法的 Convex 地址只影响工单入库，不能阻止打印服务启动
func TestLoadFromEnvMalformedConvex(t *testing.T) {
	t.Setenv("CONVEX_DEPLOYMENT", "happy-otter")
	c, err := loadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ConvexURL != "happy-otter" {
		t.Errorf("expected raw value kept, got %q", c.ConvexURL)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("RELAY_INT", "42")
	t.Setenv("RELAY_BAD_INT", "x")
	t.Setenv("RELAY_DUR", "3")

	if getIntEnv("RELAY_INT", 1) != 42 {
		t.Error("expected parsed int")
	}
	if getIntEnv("RELAY_BAD_INT", 7) != 7 {
		t.Error("expected default on invalid int")
	}
	if getDurationEnv("RELAY_DUR", time.Second) != 3*time.Second {
		t.Error("expected seconds duration")
	}
	if getEnv("RELAY_UNSET_KEY", "d") != "d" {
		t.Error("expected default string")
	}
}

func TestApplicationRootRouter(t *testing.T) {
	a := &application{}
	if a.GinRootRouter() != a.GinRootRouter() {
		t.Error("root router must be created once")
	}
	if a.GinServer() == nil {
		t.Error("expected engine")
	}
}

func TestApplicationCorsRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := &application{}
	a.CorsRouter("frontend").GET("/config", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	a.GinRootRouter().Any("/plain", func(c *gin.Context) { c.String(http.StatusMethodNotAllowed, "no") })

	req := httptest.NewRequest(http.MethodGet, "/app/api/v1/frontend/config", nil)
	req.Header.Set("Origin", "https://tickets.example.netlify.app")
	w := httptest.NewRecorder()
	a.GinServer().ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected wildcard origin, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodOptions, "/app/api/v1/plain", nil)
	req.Header.Set("Origin", "https://tickets.example.netlify.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	a.GinServer().ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("preflight outside the cors group must reach the handler, got %d", w.Code)
	}
}
