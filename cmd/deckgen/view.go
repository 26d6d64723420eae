package main

import (
	"fmt"
	"io"

	"github.com/maauso/deckgen/internal/form"
)

// terminalView prints form snapshots as lines of text.
// Only changes are printed; a repeated state after Reset prints a short notice.
type terminalView struct {
	w       io.Writer
	resolve func(string) string
	last    form.State
	drawn   bool
}

func newTerminalView(w io.Writer, resolve func(string) string) *terminalView {
	if resolve == nil {
		resolve = func(ref string) string { return ref }
	}
	return &terminalView{w: w, resolve: resolve}
}

// Render implements form.View.
func (v *terminalView) Render(s form.Snapshot) {
	if v.drawn && s.State == v.last {
		if s.TopicFocused && s.Topic == "" {
			fmt.Fprintln(v.w, "Topic cleared.")
		}
		return
	}
	v.last = s.State
	v.drawn = true

	switch {
	case s.Panels.Status:
		fmt.Fprintln(v.w, "Generating presentation...")
	case s.Panels.Result:
		fmt.Fprintf(v.w, "Presentation ready: %s\n", s.Filename)
		fmt.Fprintf(v.w, "Download: %s\n", v.resolve(s.DownloadURL))
	case s.Panels.Error:
		fmt.Fprintf(v.w, "Error: %s\n", s.ErrorMessage)
	default:
		fmt.Fprintln(v.w, "Enter a topic.")
	}
}
