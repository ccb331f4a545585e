package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>profile content</body></html>"))
	}))
	defer srv.Close()

	c := NewClient(WithDelay(0))
	body, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "<html><body>profile content</body></html>" {
		t.Errorf("unexpected body: %q", body)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("expected default user agent, got %q", gotUA)
	}
}

func TestClient_FetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(WithDelay(0))
	_, err := c.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 429 response")
	}

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if te.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", te.StatusCode)
	}
	if !IsTransport(err) {
		t.Error("expected IsTransport to match")
	}
}

func TestClient_FetchBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="g-recaptcha" data-sitekey="x"></div></body></html>`))
	}))
	defer srv.Close()

	c := NewClient(WithDelay(0))
	_, err := c.Fetch(context.Background(), srv.URL)
	if !IsBlocked(err) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
}

func TestClient_FetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(WithDelay(0))
	_, err := c.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for refused connection")
	}

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if te.StatusCode != 0 {
		t.Errorf("expected zero status for network failure, got %d", te.StatusCode)
	}
}

func TestClient_CustomUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(WithDelay(0), WithUserAgent("research-bot/1.0"))
	if _, err := c.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "research-bot/1.0" {
		t.Errorf("expected custom user agent, got %q", gotUA)
	}
}
