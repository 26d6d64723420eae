// Package server provides the HTTP server for deckgen.
// It includes handlers, middleware, routes, and DTOs separated from domain types.
package server

import "time"

// MaxTopicLength is the longest accepted topic, in characters.
const MaxTopicLength = 500

// GenerateRequest is the HTTP request body for POST /generate.
type GenerateRequest struct {
	// Topic is the presentation subject. It is trimmed before validation.
	Topic string `json:"topic" validate:"required,max=500"`
}

// GenerateResponse is the HTTP response after a deck is built.
type GenerateResponse struct {
	// Filename is the stored file name.
	Filename string `json:"filename"`
	// DownloadURL is where the file can be fetched.
	DownloadURL string `json:"download_url"`
}

// DeckResponse is the HTTP response for a deck record.
type DeckResponse struct {
	ID          string     `json:"id"`
	Topic       string     `json:"topic"`
	Status      string     `json:"status"`
	Source      string     `json:"source,omitempty"`
	Slides      int        `json:"slides,omitempty"`
	Filename    string     `json:"filename,omitempty"`
	DownloadURL string     `json:"download_url,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// DeckListResponse is the HTTP response for GET /decks.
type DeckListResponse struct {
	Decks []DeckResponse `json:"decks"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}
