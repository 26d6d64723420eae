package layout

import (
	"regexp"
	"strconv"
	"strings"
)

// Default text for must-have placeholders a plan did not fill.
const (
	defaultTitle   = "TOPIC"
	defaultSummary = "SUMMARY"
	defaultBody    = "Auto-generated content about the topic."
)

// Slide is one planned slide: a layout name and text keyed by placeholder id.
type Slide struct {
	LayoutName   string            `json:"layout_name"`
	Placeholders map[string]string `json:"placeholders"`
}

// Plan is an ordered list of slides.
type Plan struct {
	Slides []Slide `json:"slides"`
}

// Empty reports whether the plan has no slides.
func (p Plan) Empty() bool { return len(p.Slides) == 0 }

// Enforce removes slides that use ignored layouts and appends any must-have
// layout the plan does not use, filled with default content.
// The input plan is not modified.
func (m *Metadata) Enforce(p Plan) Plan {
	ignored := make(map[string]bool, len(m.ignored))
	for _, name := range m.ignored {
		ignored[normalize(name)] = true
	}

	kept := make([]Slide, 0, len(p.Slides)+len(m.mustHave))
	present := make(map[string]bool, len(p.Slides))
	for _, s := range p.Slides {
		name := normalize(s.LayoutName)
		if ignored[name] {
			continue
		}
		kept = append(kept, s)
		present[name] = true
	}

	for _, must := range m.mustHave {
		if present[normalize(must)] {
			continue
		}
		kept = append(kept, Slide{
			LayoutName:   must,
			Placeholders: m.defaultContent(must),
		})
	}

	return Plan{Slides: kept}
}

// defaultContent fills every placeholder of the named layout with stock text.
func (m *Metadata) defaultContent(name string) map[string]string {
	out := make(map[string]string)
	l, ok := m.Lookup(name)
	if !ok {
		return out
	}
	for _, ph := range l.Placeholders {
		desc := strings.ToLower(ph.ContentDescription)
		key := strconv.Itoa(ph.ID)
		switch {
		case strings.Contains(desc, "title") && !strings.Contains(desc, "summary"):
			if strings.Contains(desc, "synonym") {
				out[key] = defaultSummary
			} else {
				out[key] = defaultTitle
			}
		default:
			out[key] = defaultBody
		}
	}
	return out
}

// StubPlan returns the fixed three-slide plan used when no planner answers.
func StubPlan(topic string) Plan {
	agenda := pad(160, "This section introduces a key idea, provides context, and outlines what the student will learn in this part. "+
		"It connects the topic to real-world relevance and sets clear expectations.")

	summary := "This summary consolidates the main concepts, definitions, and relationships covered in the lesson. It clarifies the core idea, " +
		"highlights the essential steps or properties, and reflects on misconceptions. The section also suggests how to practice and " +
		"apply the knowledge with confidence in new situations."
	firstSentence := strings.SplitN(summary, ".", 2)[0] + "."
	for len(summary) < 520 {
		summary += " " + firstSentence
	}

	return Plan{Slides: []Slide{
		{
			LayoutName: "Blank",
			Placeholders: map[string]string{
				"10": strings.ToUpper(topic),
				"11": "An Overview",
			},
		},
		{
			LayoutName: "2_Custom Layout",
			Placeholders: map[string]string{
				"10": "INTRODUCTION",
				"12": "CORE IDEAS",
				"11": "APPLICATIONS",
				"13": "SUMMARY",
				"14": agenda,
				"15": agenda,
				"16": agenda,
				"17": agenda,
			},
		},
		{
			LayoutName: "14_Custom Layout",
			Placeholders: map[string]string{
				"10": "SUMMARY",
				"11": summary,
			},
		},
	}}
}

// pad repeats base until it is at least minLen bytes long.
func pad(minLen int, base string) string {
	s := base
	for len(s) < minLen {
		s += " " + base
	}
	return s[:max(minLen, len(base))]
}

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9\-_\s]`)
	slugSpace = regexp.MustCompile(`\s+`)
)

// Slug turns a topic into a file-name-safe stem. It never returns "".
func Slug(topic string) string {
	s := strings.ToLower(strings.TrimSpace(topic))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpace.ReplaceAllString(s, "-")
	if s == "" {
		return "presentation"
	}
	return s
}
