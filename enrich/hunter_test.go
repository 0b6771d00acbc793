package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFindEmail_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/email-finder" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("domain") != "joesdiner.org" {
			t.Errorf("domain = %q, want joesdiner.org", q.Get("domain"))
		}
		if q.Get("api_key") != "test-key" {
			t.Errorf("api_key = %q, want test-key", q.Get("api_key"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"email":"owner@joesdiner.org","score":92}}`))
	}))
	defer srv.Close()

	c := NewHunterClient(srv.URL, 5*time.Second)
	email, err := c.FindEmail(context.Background(), "test-key", "joesdiner.org", "Joe's Diner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "owner@joesdiner.org" {
		t.Errorf("email = %q, want owner@joesdiner.org", email)
	}
}

func TestFindEmail_NoneFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[{"id":"not_found","details":"No email found."}]}`))
	}))
	defer srv.Close()

	c := NewHunterClient(srv.URL, 5*time.Second)
	email, err := c.FindEmail(context.Background(), "test-key", "nobody.example", "Nobody")
	if err != nil {
		t.Fatalf("a no-result lookup should not be an error, got: %v", err)
	}
	if email != "" {
		t.Errorf("email = %q, want empty", email)
	}
}

func TestFindEmail_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"id":"authentication","details":"Invalid API key."}]}`))
	}))
	defer srv.Close()

	c := NewHunterClient(srv.URL, 5*time.Second)
	_, err := c.FindEmail(context.Background(), "bad-key", "acme.io", "Acme")
	if err == nil {
		t.Fatal("expected an error for HTTP 401")
	}
}

func TestFindEmail_EmptyEmailInBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"email":"","score":0}}`))
	}))
	defer srv.Close()

	c := NewHunterClient(srv.URL, 5*time.Second)
	email, err := c.FindEmail(context.Background(), "test-key", "acme.io", "Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "" {
		t.Errorf("email = %q, want empty", email)
	}
}
