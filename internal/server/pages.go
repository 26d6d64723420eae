package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/maauso/deckgen/internal/deck"
	"github.com/maauso/deckgen/internal/form"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Snapshot       form.Snapshot
	MaxTopicLength int
}

// serviceGenerator runs the form controller against the deck service in-process.
type serviceGenerator struct {
	service *deck.Service
}

func (g serviceGenerator) Generate(ctx context.Context, topic string) (form.Result, error) {
	res, err := g.service.Generate(ctx, topic)
	if err != nil {
		return form.Result{}, &form.GenerationError{Message: buildFailureMessage(err)}
	}
	return form.Result{Filename: res.Filename, DownloadURL: res.DownloadURL}, nil
}

func (h *Handlers) newController(opts ...form.Option) *form.Controller {
	opts = append([]form.Option{form.WithLogger(h.logger)}, opts...)
	return form.NewController(serviceGenerator{service: h.service}, opts...)
}

// Index handles GET / requests with an idle, focused form.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	c := h.newController()
	c.Reset()
	h.renderPage(w, c.Snapshot())
}

// SubmitForm handles POST / requests: the posted topic goes through the
// form controller and the page is drawn from its final snapshot.
func (h *Handlers) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest, "INVALID_FORM")
		return
	}

	topic := r.PostFormValue("topic")
	if len([]rune(topic)) > MaxTopicLength {
		c := h.newController(form.WithState(form.Failed(msgTopicTooLong)))
		c.SetTopic(topic)
		h.renderPage(w, c.Snapshot())
		return
	}

	c := h.newController()
	c.SetTopic(topic)
	if err := c.Submit(r.Context()); err != nil && !errors.Is(err, form.ErrEmptyTopic) {
		h.logger.Warn("form submission rejected", slog.String("error", err.Error()))
	}
	h.renderPage(w, c.Snapshot())
}

// Again handles POST /again requests. The page posts back the state it was
// drawn from so Reset acts on the same panels the user saw.
func (h *Handlers) Again(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest, "INVALID_FORM")
		return
	}

	c := h.newController(form.WithState(restoreState(r)))
	c.Reset()
	h.renderPage(w, c.Snapshot())
}

func restoreState(r *http.Request) form.State {
	switch r.PostFormValue("phase") {
	case form.PhaseSuccess.String():
		return form.Succeeded(form.Result{
			Filename:    r.PostFormValue("filename"),
			DownloadURL: r.PostFormValue("download_url"),
		})
	case form.PhaseFailure.String():
		return form.Failed(r.PostFormValue("error"))
	default:
		return form.Idle()
	}
}

func (h *Handlers) renderPage(w http.ResponseWriter, snap form.Snapshot) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Snapshot: snap, MaxTopicLength: MaxTopicLength}); err != nil {
		h.logger.Error("failed to render page", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
