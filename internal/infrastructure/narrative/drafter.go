package narrative

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/openfms/backend/internal/infrastructure/config"
)

const systemInstruction = `You are a civilian budget analyst writing certification
memoranda for a federal funds control office. Given a subject and a set of facts,
write one short formal paragraph suitable for the official record. State only the
supplied facts. Do not invent amounts, dates, or names.`

// GeminiDrafter produces short narrative memoranda for funds control
// actions using the Gemini API. It satisfies the acquisition service's
// NarrativeDrafter interface; posting never depends on it succeeding.
type GeminiDrafter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGeminiDrafter creates a drafter from narrative configuration.
// Returns nil when the drafter is disabled, which callers treat as
// "no narrative".
func NewGeminiDrafter(ctx context.Context, cfg config.NarrativeConfig, logger *zap.Logger) (*GeminiDrafter, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize narrative client: %w", err)
	}
	return &GeminiDrafter{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Draft writes a one-paragraph memorandum for the subject from the given facts
func (d *GeminiDrafter) Draft(ctx context.Context, subject string, facts map[string]string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.client.Models.GenerateContent(ctx, d.model,
		genai.Text(buildPrompt(subject, facts)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		})
	if err != nil {
		return "", fmt.Errorf("narrative generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("narrative generation returned no content")
	}

	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("narrative generation returned empty text")
	}
	d.logger.Debug("Drafted narrative", zap.String("subject", subject), zap.Int("length", len(text)))
	return text, nil
}

// buildPrompt renders the subject and facts in a stable key order
func buildPrompt(subject string, facts map[string]string) string {
	keys := make([]string, 0, len(facts))
	for key := range facts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n\nFacts:\n", subject)
	for _, key := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", key, facts[key])
	}
	return b.String()
}
