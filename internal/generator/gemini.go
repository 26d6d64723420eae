package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/maauso/deckgen/internal/layout"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash-lite"

const systemInstruction = "You generate slide plans as JSON for a PowerPoint builder. " +
	"Use the provided layout metadata to choose appropriate layouts and map placeholder IDs to text. " +
	"Constraints: ALWAYS include all layouts whose description contains 'MUST HAVE'. " +
	"NEVER use any layout whose description contains 'IGNORE'. " +
	"Return JSON only with the exact schema. Do not include markdown."

const schemaHint = `{"slides":[{"layout_name":"Blank","placeholders":{"10":"TITLE IN ALL CAPS","11":"Title Case subtitle"}}]}`

var trailingObject = regexp.MustCompile(`\{[\s\S]*\}$`)

// contentGenerator is the subset of *genai.Models used by GeminiPlanner.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiPlanner asks a Gemini model for a slide plan.
type GeminiPlanner struct {
	models contentGenerator
	model  string
	logger *slog.Logger
}

// GeminiOption configures a GeminiPlanner.
type GeminiOption func(*GeminiPlanner)

// WithModel overrides the model name.
func WithModel(model string) GeminiOption {
	return func(p *GeminiPlanner) {
		if model != "" {
			p.model = model
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) GeminiOption {
	return func(p *GeminiPlanner) {
		p.logger = logger
	}
}

// NewGeminiPlanner creates a planner backed by the Gemini API.
func NewGeminiPlanner(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiPlanner, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("generator: create genai client: %w", err)
	}
	return newGeminiPlanner(client.Models, opts...), nil
}

func newGeminiPlanner(models contentGenerator, opts ...GeminiOption) *GeminiPlanner {
	p := &GeminiPlanner{
		models: models,
		model:  DefaultModel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan implements Planner.
func (p *GeminiPlanner) Plan(ctx context.Context, topic string, meta *layout.Metadata) (layout.Plan, error) {
	metaJSON, err := meta.JSON()
	if err != nil {
		return layout.Plan{}, fmt.Errorf("generator: encode metadata: %w", err)
	}

	prompt := fmt.Sprintf("TOPIC: %s\n\nMETADATA (JSON):\n%s\n\nOutput strictly as minified JSON matching this schema: %s\n",
		topic, metaJSON, schemaHint)

	p.logger.Debug("requesting slide plan",
		slog.String("model", p.model),
		slog.String("topic", topic),
	)

	result, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return layout.Plan{}, fmt.Errorf("generator: generate content: %w", err)
	}
	if result == nil {
		return layout.Plan{}, ErrEmptyResponse
	}

	return parsePlan(result.Text())
}

// parsePlan decodes the trailing JSON object of a model reply.
func parsePlan(text string) (layout.Plan, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return layout.Plan{}, ErrEmptyResponse
	}

	raw := text
	if m := trailingObject.FindString(text); m != "" {
		raw = m
	}

	var plan layout.Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return layout.Plan{}, fmt.Errorf("%w: %w", ErrNoJSON, err)
	}
	return plan, nil
}

// Compile-time check that GeminiPlanner implements Planner.
var _ Planner = (*GeminiPlanner)(nil)
