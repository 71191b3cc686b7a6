package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestAuthenticate(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("expected form content type, got %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("expected grant_type client_credentials, got %s", got)
		}
		if got := r.PostForm.Get("client_id"); got != "my-id" {
			t.Errorf("expected client_id my-id, got %s", got)
		}
		if got := r.PostForm.Get("client_secret"); got != "my-secret" {
			t.Errorf("expected client_secret my-secret, got %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	s := New(5*time.Second, zerolog.Nop())
	err := s.Authenticate(context.Background(), Credentials{
		ClientID:     "my-id",
		ClientSecret: "my-secret",
		TokenURL:     server.URL + "/api/token",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := s.Credential(); got != "tok-123" {
		t.Errorf("expected credential tok-123, got %q", got)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected exactly 1 token request, got %d", n)
	}
}

func TestAuthenticateFailureLeavesCredentialUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"Invalid client"}`))
	}))
	defer server.Close()

	s := New(5*time.Second, zerolog.Nop())
	err := s.Authenticate(context.Background(), Credentials{
		ClientID:     "bad",
		ClientSecret: "bad",
		TokenURL:     server.URL,
	})
	if err == nil {
		t.Fatal("expected error from failed exchange")
	}

	if got := s.Credential(); got != "" {
		t.Errorf("expected empty credential, got %q", got)
	}
	if _, err := s.Token(); !errors.Is(err, ErrNoCredential) {
		t.Errorf("expected ErrNoCredential, got %v", err)
	}
}

func TestHTTPClientSetsBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	s := New(5*time.Second, zerolog.Nop())
	s.SetCredential("tok-abc")

	resp, err := s.HTTPClient().Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = resp.Body.Close()
}

func TestHTTPClientWithoutCredential(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	s := New(5*time.Second, zerolog.Nop())

	_, err := s.HTTPClient().Get(server.URL)
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("expected no request to reach the server, got %d", n)
	}
}
