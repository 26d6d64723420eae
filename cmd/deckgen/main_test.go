package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/deckgen/internal/form"
)

func newFakeServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req struct {
			Topic string `json:"topic"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if req.Topic == "boom" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Failed to build PPTX: disk full","code":"BUILD_FAILED"}`))
			return
		}
		_, _ = w.Write([]byte(`{"filename":"tides.pptx","download_url":"/download/tides.pptx"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_OneShot(t *testing.T) {
	var calls atomic.Int32
	srv := newFakeServer(t, &calls)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-server", srv.URL, "Ocean", "tides"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, stdout.String(), "Generating presentation...")
	assert.Contains(t, stdout.String(), "Presentation ready: tides.pptx")
	assert.Contains(t, stdout.String(), "Download: "+srv.URL+"/download/tides.pptx")
}

func TestRun_OneShotFailure(t *testing.T) {
	var calls atomic.Int32
	srv := newFakeServer(t, &calls)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-server", srv.URL, "boom"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Error: Failed to build PPTX: disk full")
}

func TestRun_OneShotBlankTopic(t *testing.T) {
	var calls atomic.Int32
	srv := newFakeServer(t, &calls)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-server", srv.URL, "   "}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Zero(t, calls.Load())
	assert.Contains(t, stderr.String(), form.ErrEmptyTopic.Error())
}

func TestRun_Interactive(t *testing.T) {
	var calls atomic.Int32
	srv := newFakeServer(t, &calls)

	input := "Tides\nagain\n\n   \nboom\nagain\n"
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-server", srv.URL}, strings.NewReader(input), &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.Equal(t, int32(2), calls.Load())

	out := stdout.String()
	assert.Contains(t, out, "Presentation ready: tides.pptx")
	assert.Contains(t, out, "Enter a topic.")
	assert.Contains(t, out, "Error: Failed to build PPTX: disk full")
	// Reset after a failure keeps the error and only clears the topic.
	assert.True(t, strings.HasSuffix(out, "Topic cleared.\n"))
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-nope"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 2, code)
}

func TestRun_InvalidServerURL(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-server", "not-a-url", "x"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "error:")
}
