package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/deckgen/internal/deck"
	"github.com/maauso/deckgen/internal/pptx"
	"github.com/maauso/deckgen/internal/storage"
)

// Error messages returned by POST /generate. Clients display them verbatim.
const (
	msgInvalidRequest = "Invalid request"
	msgTopicRequired  = "Topic is required"
	msgTopicTooLong   = "Topic is too long"
	msgBuildFailed    = "Failed to build PPTX: "
)

var errNullBody = errors.New("request body is null")

// Handlers contains the HTTP handlers for the API and the form page.
type Handlers struct {
	service   *deck.Service
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *deck.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Generate handles POST /generate requests.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	var body *GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		if err == nil {
			err = errNullBody
		}
		h.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, msgInvalidRequest, "INVALID_JSON")
		return
	}
	req := *body
	req.Topic = strings.TrimSpace(req.Topic)

	if msg, code, ok := h.validateTopic(req); !ok {
		writeError(w, http.StatusBadRequest, msg, code)
		return
	}

	result, err := h.service.Generate(r.Context(), req.Topic)
	if err != nil {
		h.logger.Error("failed to generate deck",
			slog.String("topic", req.Topic),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, buildFailureMessage(err), "BUILD_FAILED")
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Filename:    result.Filename,
		DownloadURL: result.DownloadURL,
	})
}

// validateTopic maps validation failures to the messages clients expect.
func (h *Handlers) validateTopic(req GenerateRequest) (msg, code string, ok bool) {
	err := h.validator.Struct(req)
	if err == nil {
		return "", "", true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
		return msgTopicTooLong, "TOPIC_TOO_LONG", false
	}
	return msgTopicRequired, "TOPIC_REQUIRED", false
}

// buildFailureMessage formats a generation failure for clients.
func buildFailureMessage(err error) string {
	var buildErr *deck.BuildError
	if errors.As(err, &buildErr) {
		return msgBuildFailed + buildErr.Err.Error()
	}
	return msgBuildFailed + err.Error()
}

// Download handles GET /download/{filename} requests.
func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")

	f, err := h.service.Open(r.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			writeError(w, http.StatusNotFound, "file not found", "FILE_NOT_FOUND")
			return
		}
		h.logger.Error("failed to open deck",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to open file", "FILE_OPEN_FAILED")
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", pptx.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Warn("download interrupted",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
	}
}

// ListDecks handles GET /decks requests.
func (h *Handlers) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.service.ListDecks(r.Context())
	if err != nil {
		h.logger.Error("failed to list decks", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to list decks", "DECK_LIST_FAILED")
		return
	}

	resp := DeckListResponse{Decks: make([]DeckResponse, 0, len(decks))}
	for _, d := range decks {
		resp.Decks = append(resp.Decks, toDeckResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetDeck handles GET /decks/{id} requests.
func (h *Handlers) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")
	if deckID == "" {
		writeError(w, http.StatusBadRequest, "deck ID is required", "MISSING_DECK_ID")
		return
	}

	d, err := h.service.GetDeck(r.Context(), deckID)
	if err != nil {
		if errors.Is(err, deck.ErrDeckNotFound) {
			writeError(w, http.StatusNotFound, "deck not found", "DECK_NOT_FOUND")
			return
		}
		h.logger.Error("failed to get deck",
			slog.String("deck_id", deckID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to get deck", "DECK_FETCH_FAILED")
		return
	}

	writeJSON(w, http.StatusOK, toDeckResponse(d))
}

func toDeckResponse(d *deck.Deck) DeckResponse {
	resp := DeckResponse{
		ID:          d.ID,
		Topic:       d.Topic,
		Status:      string(d.Status),
		Source:      string(d.Source),
		Slides:      d.Slides,
		Filename:    d.Filename,
		DownloadURL: d.DownloadURL,
		Error:       d.Error,
		CreatedAt:   d.CreatedAt,
	}
	if !d.CompletedAt.IsZero() {
		completed := d.CompletedAt
		resp.CompletedAt = &completed
	}
	return resp
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
