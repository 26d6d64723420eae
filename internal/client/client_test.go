package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/maauso/deckgen/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr error
	}{
		{"empty", "", ErrBaseURLRequired},
		{"relative", "/generate", ErrInvalidBaseURL},
		{"no host", "http://", ErrInvalidBaseURL},
		{"valid", "http://localhost:5000", nil},
		{"trailing slash", "http://localhost:5000/", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.baseURL)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestGenerate_Success(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "photosynthesis", req.Topic)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(generateResponse{
			Filename:    "photosynthesis-20250101-120000.pptx",
			DownloadURL: "/download/photosynthesis-20250101-120000.pptx",
		})
	}))
	defer server.Close()

	c, err := NewClient(server.URL + "/")
	require.NoError(t, err)

	res, err := c.Generate(context.Background(), "photosynthesis")
	require.NoError(t, err)
	assert.Equal(t, "photosynthesis-20250101-120000.pptx", res.Filename)
	assert.Equal(t, "/download/photosynthesis-20250101-120000.pptx", res.DownloadURL)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_ServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"message present", http.StatusBadRequest, `{"error":"Topic is required"}`, "Topic is required"},
		{"message with code", http.StatusInternalServerError, `{"error":"Failed to build PPTX: disk full","code":"BUILD_FAILED"}`, "Failed to build PPTX: disk full"},
		{"message absent", http.StatusInternalServerError, `{}`, form.FallbackServerMessage},
		{"message null", http.StatusInternalServerError, `{"error":null}`, form.FallbackServerMessage},
		{"message empty", http.StatusBadGateway, `{"error":""}`, form.FallbackServerMessage},
		{"message not a string", http.StatusInternalServerError, `{"error":42}`, form.FallbackServerMessage},
		{"message is an object", http.StatusInternalServerError, `{"error":{"detail":"x"}}`, form.FallbackServerMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := NewClient(server.URL)
			require.NoError(t, err)

			_, err = c.Generate(context.Background(), "topic")
			require.Error(t, err)

			var genErr *form.GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, tt.wantMsg, genErr.Error())
			assert.Equal(t, int32(1), calls.Load(), "no retries expected")
		})
	}
}

func TestGenerate_NonJSONBody(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"success status", http.StatusOK},
		{"failure status", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("<html>oops</html>"))
			}))
			defer server.Close()

			c, err := NewClient(server.URL)
			require.NoError(t, err)

			_, err = c.Generate(context.Background(), "topic")
			require.Error(t, err)

			var genErr *form.GenerationError
			assert.False(t, errors.As(err, &genErr))
			assert.Contains(t, err.Error(), "unmarshal response")
		})
	}
}

func TestGenerate_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(url)
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestGenerate_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Generate(ctx, "topic")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolve(t *testing.T) {
	c, err := NewClient("http://localhost:5000")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/download/a.pptx", c.Resolve("/download/a.pptx"))
	assert.Equal(t, "https://bucket.s3.us-east-1.amazonaws.com/decks/a.pptx",
		c.Resolve("https://bucket.s3.us-east-1.amazonaws.com/decks/a.pptx"))
}

func TestGenerate_DrivesFormController(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"X"}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	ctrl := form.NewController(c)
	ctrl.SetTopic("anything")
	require.NoError(t, ctrl.Submit(context.Background()))

	snap := ctrl.Snapshot()
	assert.Equal(t, form.Panels{Error: true}, snap.Panels)
	assert.Equal(t, "X", snap.ErrorMessage)
}
