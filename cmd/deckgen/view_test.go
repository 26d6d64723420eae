package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maauso/deckgen/internal/form"
)

func snapshotOf(s form.State) form.Snapshot {
	snap := form.Snapshot{State: s, Panels: s.Panels(), TriggerDisabled: s.TriggerDisabled()}
	if r, ok := s.Result(); ok {
		snap.Filename = r.Filename
		snap.DownloadURL = r.DownloadURL
	}
	if msg, ok := s.Message(); ok {
		snap.ErrorMessage = msg
	}
	return snap
}

func TestTerminalView_Render(t *testing.T) {
	var buf bytes.Buffer
	v := newTerminalView(&buf, func(ref string) string { return "http://host" + ref })

	v.Render(snapshotOf(form.Pending()))
	v.Render(snapshotOf(form.Succeeded(form.Result{Filename: "a.pptx", DownloadURL: "/download/a.pptx"})))
	v.Render(snapshotOf(form.Failed("nope")))

	assert.Equal(t,
		"Generating presentation...\n"+
			"Presentation ready: a.pptx\n"+
			"Download: http://host/download/a.pptx\n"+
			"Error: nope\n",
		buf.String())
}

func TestTerminalView_RepeatedState(t *testing.T) {
	var buf bytes.Buffer
	v := newTerminalView(&buf, nil)

	failed := snapshotOf(form.Failed("nope"))
	v.Render(failed)
	v.Render(failed)

	cleared := failed
	cleared.TopicFocused = true
	v.Render(cleared)

	assert.Equal(t, "Error: nope\nTopic cleared.\n", buf.String())
}
