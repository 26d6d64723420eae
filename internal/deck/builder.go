package deck

import (
	"strconv"
	"time"

	"github.com/maauso/deckgen/internal/layout"
	"github.com/maauso/deckgen/internal/pptx"
)

// Build maps a plan onto the layouts in meta and returns the presentation
// to write. Slides without a layout name are skipped. Placeholder text is
// cased and clipped by the rules of the layout the plan names, and a closing
// slide using the last layout is appended unchanged.
func Build(topic string, plan layout.Plan, meta *layout.Metadata, created time.Time) pptx.Presentation {
	p := pptx.Presentation{
		Title:   topic,
		Created: created,
		Slides:  make([]pptx.Slide, 0, len(plan.Slides)+1),
	}

	for _, planned := range plan.Slides {
		if planned.LayoutName == "" {
			continue
		}
		p.Slides = append(p.Slides, buildSlide(planned, meta))
	}

	p.Slides = append(p.Slides, pptx.Slide{Name: meta.Last().Name})
	return p
}

func buildSlide(planned layout.Slide, meta *layout.Metadata) pptx.Slide {
	target := meta.Find(planned.LayoutName)
	rules, _ := meta.Lookup(planned.LayoutName)

	slide := pptx.Slide{Name: target.Name}
	for _, ph := range target.Placeholders {
		key := strconv.Itoa(ph.ID)
		text, ok := planned.Placeholders[key]
		if !ok {
			continue
		}

		var rule layout.Placeholder
		if rules != nil {
			rule, _ = rules.Placeholder(ph.ID)
		}
		text = layout.ApplyRule(text, rule.ContentDescription)
		text = layout.Clip(text, rule.MaxChars)

		slide.Boxes = append(slide.Boxes, pptx.TextBox{Key: key, Text: text})
	}
	return slide
}
