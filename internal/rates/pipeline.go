package rates

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dlow/fd-tracker/internal/domain"
)

// Generator is the generative-extraction collaborator. RequestStructured
// constrains the response to JSON; RequestWithSearch lets the model consult
// live web content and reply in free text. Both may fail with network, quota
// or service errors; the pipeline absorbs every such failure.
type Generator interface {
	RequestStructured(ctx context.Context, prompt string) (string, error)
	RequestWithSearch(ctx context.Context, prompt string) (string, error)
}

// Strategy is one attempt at producing a normalized offer list. A strategy
// reports failure through its error return; it never panics and the
// pipeline never propagates the error past the cascade.
type Strategy interface {
	Name() string
	Extract(ctx context.Context) ([]domain.RateOffer, error)
}

// Pipeline runs an ordered cascade of extraction strategies and returns the
// first normalized result. The final strategy is the static dataset, so
// Scan always succeeds: the public contract is a non-empty offer list and a
// nil error for any combination of upstream failures.
type Pipeline struct {
	strategies []Strategy
	log        zerolog.Logger
}

// NewPipeline builds the standard three-step cascade: structured-output
// request, search-augmented request with embedded-array extraction, then
// the static fallback.
func NewPipeline(gen Generator, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		strategies: []Strategy{
			&structuredStrategy{gen: gen},
			&searchStrategy{gen: gen},
			staticStrategy{},
		},
		log: log,
	}
}

// NewPipelineWithStrategies builds a pipeline over an explicit strategy
// order. Used by tests and by callers that want to skip billed calls.
func NewPipelineWithStrategies(log zerolog.Logger, strategies ...Strategy) *Pipeline {
	return &Pipeline{strategies: strategies, log: log}
}

// Scan walks the cascade in order, one attempt per strategy. A failed call
// advances rather than retries since every model call is billed.
func (p *Pipeline) Scan(ctx context.Context) []domain.RateOffer {
	for _, s := range p.strategies {
		offers, err := s.Extract(ctx)
		if err != nil {
			p.log.Warn().Err(err).Str("strategy", s.Name()).Msg("Rate extraction strategy failed, advancing")
			continue
		}
		p.log.Info().Str("strategy", s.Name()).Int("offers", len(offers)).Msg("Rate extraction succeeded")
		return offers
	}

	// Unreachable with the standard cascade; kept so a custom strategy list
	// without a terminal step still honours the never-empty contract.
	p.log.Error().Msg("All rate extraction strategies failed, serving static dataset")
	return StaticOffers()
}

type structuredStrategy struct {
	gen Generator
}

func (s *structuredStrategy) Name() string { return "structured_query" }

func (s *structuredStrategy) Extract(ctx context.Context) ([]domain.RateOffer, error) {
	text, err := s.gen.RequestStructured(ctx, structuredPrompt)
	if err != nil {
		return nil, fmt.Errorf("structured query: %w", err)
	}
	offers, err := NormalizeJSON([]byte(cleanModelJSON(text)))
	if err != nil {
		return nil, fmt.Errorf("structured query: %w", err)
	}
	return offers, nil
}

type searchStrategy struct {
	gen Generator
}

func (s *searchStrategy) Name() string { return "search_and_extract" }

func (s *searchStrategy) Extract(ctx context.Context) ([]domain.RateOffer, error) {
	text, err := s.gen.RequestWithSearch(ctx, searchPrompt)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	raw, ok := extractJSONArray(text)
	if !ok {
		return nil, fmt.Errorf("search query: no JSON array of objects in response")
	}
	offers, err := NormalizeJSON([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	return offers, nil
}

type staticStrategy struct{}

func (staticStrategy) Name() string { return "static_fallback" }

func (staticStrategy) Extract(ctx context.Context) ([]domain.RateOffer, error) {
	return StaticOffers(), nil
}

// arrayOfObjects matches the first plausible array-of-objects substring:
// an opening bracket, at least one object literal, a closing bracket.
var arrayOfObjects = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)

// extractJSONArray digs an embedded JSON array out of free-form model text.
// Markdown fences are stripped first since models love to add them even
// when told not to.
func extractJSONArray(text string) (string, bool) {
	match := arrayOfObjects.FindString(cleanModelJSON(text))
	if match == "" {
		return "", false
	}
	return match, true
}

// cleanModelJSON strips ``` fences the model may have wrapped its output in.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
