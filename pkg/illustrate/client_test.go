package illustrate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClient_Illustrate(t *testing.T) {
	var got envisionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/envision", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"image_id":"img-42","imggen_prompt":"a quiet harbor","status":"success"}`))
	}))
	defer server.Close()

	c := NewClient(Options{
		BaseURL:          server.URL,
		ImageURLTemplate: server.URL + "/api/images/{image_id}",
	})

	url, err := c.Illustrate(context.Background(), "the harbor", "before the harbor after")
	require.NoError(t, err)
	require.Equal(t, server.URL+"/api/images/img-42", url)
	require.Equal(t, envisionRequest{Passage: "the harbor", Context: "before the harbor after"}, got)
}

func TestClient_Envision(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"image_id":"abc","imggen_prompt":"prompt","status":"success"}`))
	}))
	defer server.Close()

	resp, err := NewClient(Options{BaseURL: server.URL + "/"}).Envision(context.Background(), "p", "c")
	require.NoError(t, err)
	require.Equal(t, Response{ImageID: "abc", ImggenPrompt: "prompt", Status: "success"}, resp)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, "boom", ErrUpstream},
		{"bad request", http.StatusBadRequest, `{"detail":"no passage"}`, ErrUpstream},
		{"not json", http.StatusOK, "<html>", ErrInvalidResponse},
		{"missing image id", http.StatusOK, `{"status":"success"}`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(Options{BaseURL: server.URL}).Illustrate(context.Background(), "p", "c")
			require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestClient_NoRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(Options{BaseURL: server.URL}).Illustrate(context.Background(), "p", "c")
	require.ErrorIs(t, err, ErrUpstream)
	require.Equal(t, 1, calls)
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(Options{BaseURL: server.URL}).Illustrate(ctx, "p", "c")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_TransportError(t *testing.T) {
	failure := errors.New("connection refused")
	c := NewClientWithDoer(Options{}, doerFunc(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "http://localhost:8000/api/envision", r.URL.String())
		return nil, failure
	}))

	_, err := c.Illustrate(context.Background(), "p", "c")
	require.ErrorIs(t, err, failure)
}

func TestClient_ImageURL(t *testing.T) {
	c := NewClientWithDoer(Options{}, nil)
	require.Equal(t, "http://localhost:8000/api/images/xyz", c.ImageURL("xyz"))
}
