// Package client provides an HTTP client for the deckgen generate endpoint.
// HTTPClient implements form.Generator, so a form controller can drive a
// remote server the same way it drives the in-process service.
package client

import "encoding/json"

// generateRequest is the body of POST /generate.
type generateRequest struct {
	Topic string `json:"topic"`
}

// generateResponse covers both the success and the failure body of POST /generate.
type generateResponse struct {
	Filename    string `json:"filename,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
	Error       json.RawMessage `json:"error,omitempty"`
}

// errorMessage returns the error field when it is a JSON string. Any other
// value yields "", which the form shows as its fallback message.
func (r generateResponse) errorMessage() string {
	var msg string
	if err := json.Unmarshal(r.Error, &msg); err != nil {
		return ""
	}
	return msg
}
