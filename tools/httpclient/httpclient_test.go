package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRequestCDefaultsToJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected json content type, got %q", got)
		}
		b, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write(b)
	}))
	defer srv.Close()

	body, status, err := RequestC(context.Background(), nil, http.MethodPost, srv.URL, strings.NewReader(`{"a":1}`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusCreated {
		t.Errorf("expected 201, got %d", status)
	}
	if string(body) != `{"a":1}` {
		t.Errorf("expected echoed body, got %s", body)
	}
}

func TestRequestCNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, status, err := RequestC(context.Background(), NewClient(Options{}), http.MethodGet, url, nil, nil)
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if status != 0 {
		t.Errorf("expected status 0 on network error, got %d", status)
	}
}

func TestNewClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 20 * time.Millisecond, MaxIdleConns: 2, MaxIdleConnsPerHost: 1, IdleConnTimeout: time.Second})
	if _, _, err := RequestC(context.Background(), c, http.MethodGet, srv.URL, nil, nil); err == nil {
		t.Fatal("expected timeout error")
	}
}
