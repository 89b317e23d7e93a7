package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestFetchToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		io.WriteString(w, `{"access_token":"tok-123","expires_in":3600}`)
	}))
	defer ts.Close()

	c := NewTokenClient(ts.URL, zap.NewNop())
	token, err := c.FetchToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}
}

func TestFetchTokenFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "denied", http.StatusForbidden)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `not json`)
		}},
		{"missing field", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"token_type":"bearer"}`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			c := NewTokenClient(ts.URL, zap.NewNop())
			if _, err := c.FetchToken(context.Background()); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestFetchTokenTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused

	c := NewTokenClient(ts.URL, zap.NewNop())
	if _, err := c.FetchToken(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
