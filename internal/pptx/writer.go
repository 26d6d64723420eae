// Package pptx writes minimal Office Open XML presentations.
//
// A presentation has one master, one blank layout and a theme. Every slide is
// a stack of text boxes laid out top to bottom on a 16:9 canvas.
package pptx

import (
	"archive/zip"
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"
)

// ContentType is the MIME type of a .pptx file.
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Slide canvas and margins in EMU.
const (
	slideWidth  = 12192000
	slideHeight = 6858000
	margin      = 457200
	gap         = 91440

	titleBand = 1143000

	// Font sizes are in hundredths of a point; one unit is 127 EMU.
	titleSize      = 3200
	bodySize       = 1800
	minFontSize    = 100
	emuPerFontUnit = 127
)

//go:embed parts/*
var parts embed.FS

var templates = template.Must(
	template.New("pptx").
		Funcs(template.FuncMap{"xml": escape}).
		ParseFS(parts, "parts/*.tmpl"),
)

// TextBox is one text region on a slide. Key names the placeholder it fills.
type TextBox struct {
	Key  string
	Text string
}

// Slide is a named slide. The first box is drawn as the slide title.
type Slide struct {
	Name  string
	Boxes []TextBox
}

// Presentation is a titled list of slides.
type Presentation struct {
	Title   string
	Created time.Time
	Slides  []Slide
}

type slideRef struct {
	Number  int
	SlideID int
	RelID   string
}

type shape struct {
	ShapeID    int
	Key        string
	X, Y       int
	CX, CY     int
	Size       int
	Bold       bool
	Paragraphs []string
}

type slideData struct {
	Name   string
	Shapes []shape
}

// Write encodes p as a .pptx archive into w.
func Write(w io.Writer, p Presentation) error {
	created := p.Created
	if created.IsZero() {
		created = time.Now()
	}

	refs := make([]slideRef, len(p.Slides))
	for i := range p.Slides {
		refs[i] = slideRef{
			Number:  i + 1,
			SlideID: 256 + i,
			RelID:   fmt.Sprintf("rId%d", i+3),
		}
	}
	pkg := struct {
		Title   string
		Created string
		Width   int
		Height  int
		Slides  []slideRef
	}{
		Title:   p.Title,
		Created: created.UTC().Format(time.RFC3339),
		Width:   slideWidth,
		Height:  slideHeight,
		Slides:  refs,
	}

	zw := zip.NewWriter(w)

	rendered := []struct {
		name string
		tmpl string
	}{
		{"[Content_Types].xml", "content_types.xml.tmpl"},
		{"docProps/core.xml", "core.xml.tmpl"},
		{"ppt/presentation.xml", "presentation.xml.tmpl"},
		{"ppt/_rels/presentation.xml.rels", "presentation.xml.rels.tmpl"},
	}
	for _, r := range rendered {
		if err := writeTemplate(zw, r.name, r.tmpl, pkg); err != nil {
			return err
		}
	}

	static := []struct {
		name string
		src  string
	}{
		{"_rels/.rels", "parts/root.rels"},
		{"ppt/slideMasters/slideMaster1.xml", "parts/slide_master.xml"},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", "parts/slide_master.xml.rels"},
		{"ppt/slideLayouts/slideLayout1.xml", "parts/slide_layout.xml"},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", "parts/slide_layout.xml.rels"},
		{"ppt/theme/theme1.xml", "parts/theme.xml"},
	}
	for _, s := range static {
		if err := copyPart(zw, s.name, s.src); err != nil {
			return err
		}
	}

	for i, s := range p.Slides {
		n := i + 1
		if err := writeTemplate(zw, fmt.Sprintf("ppt/slides/slide%d.xml", n), "slide.xml.tmpl", layoutSlide(s)); err != nil {
			return err
		}
		if err := copyPart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), "parts/slide.xml.rels"); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("pptx: close archive: %w", err)
	}
	return nil
}

// Bytes encodes p and returns the archive.
func Bytes(p Presentation) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// layoutSlide stacks the boxes vertically. The title box gets a fixed band,
// the remaining height is split evenly between the other boxes. Crowded
// slides get narrower gaps and smaller text so every extent stays positive.
func layoutSlide(s Slide) slideData {
	data := slideData{Name: s.Name}
	if len(s.Boxes) == 0 {
		return data
	}

	width := slideWidth - 2*margin
	titleHeight := slideHeight - 2*margin
	bodyCount := len(s.Boxes) - 1
	bodyHeight, bodyGap, bodyFont := 0, gap, bodySize
	if bodyCount > 0 {
		titleHeight = titleBand
		slot := (slideHeight - 2*margin - titleHeight - gap) / bodyCount
		bodyGap = min(gap, slot/4)
		bodyHeight = max(slot-bodyGap, 1)
		bodyFont = max(minFontSize, min(bodySize, bodyHeight/emuPerFontUnit))
	}

	y := margin
	for i, box := range s.Boxes {
		sh := shape{
			ShapeID:    i + 2,
			Key:        box.Key,
			X:          margin,
			Y:          y,
			CX:         width,
			Paragraphs: strings.Split(box.Text, "\n"),
		}
		if i == 0 {
			sh.CY = titleHeight
			sh.Size = titleSize
			sh.Bold = true
			y += sh.CY + gap
		} else {
			sh.CY = bodyHeight
			sh.Size = bodyFont
			y += sh.CY + bodyGap
		}
		data.Shapes = append(data.Shapes, sh)
	}
	return data
}

func writeTemplate(zw *zip.Writer, name, tmpl string, data any) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("pptx: create %s: %w", name, err)
	}
	if err := templates.ExecuteTemplate(f, tmpl, data); err != nil {
		return fmt.Errorf("pptx: render %s: %w", name, err)
	}
	return nil
}

func copyPart(zw *zip.Writer, name, src string) error {
	data, err := parts.ReadFile(src)
	if err != nil {
		return fmt.Errorf("pptx: read %s: %w", src, err)
	}
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("pptx: create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("pptx: write %s: %w", name, err)
	}
	return nil
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
