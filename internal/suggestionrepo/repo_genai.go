// Package suggestionrepo classifies transaction descriptions with a
// Gemini model and maps the raw model output onto domain suggestions.
package suggestionrepo

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/categorypkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/errorspkg"
)

// RepoGenAI provides access to the Gemini API.
type RepoGenAI struct {
	client *genai.Client
	model  string
}

// NewRepoGenAI returns a RepoGenAI talking to the given model. The API key
// is picked up from the environment by the genai client itself.
func NewRepoGenAI(ctx context.Context, model string) (*RepoGenAI, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, err
	}

	return &RepoGenAI{client: client, model: model}, nil
}

func classifyPrompt(description string) string {
	return "You are a personal finance assistant that classifies expense descriptions.\n\n" +
		"Task:\n" +
		"- Pick the single most appropriate category for the expense description below.\n" +
		"- The category MUST be one of: " + strings.Join(categorypkg.SupportedCategories, ", ") + ".\n" +
		"- Estimate your confidence as a number between 0 and 1.\n\n" +
		"Return ONLY valid raw JSON with exactly these fields:\n" +
		"{\"category\": string, \"confidence\": number}\n" +
		"Do NOT wrap the response in code fences.\n" +
		"Do NOT use ```json or any Markdown.\n\n" +
		"Description: " + description + "\n"
}

// Classify asks the model for a category for the given description.
func (r *RepoGenAI) Classify(ctx context.Context, description string) (domain.Suggestion, error) {
	l := zerolog.Ctx(ctx)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: classifyPrompt(description)},
			},
		},
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, nil)
	if err != nil {
		l.Error().Err(err).Msg("suggestionrepo: generate content")
		return domain.Suggestion{}, errorspkg.ErrInternal
	}

	rawText := resp.Text()
	if rawText == "" {
		l.Warn().Msg("suggestionrepo: empty response from model")
		return domain.Suggestion{}, domain.ErrNoSuggestion
	}

	suggestion, err := parseSuggestion(rawText)
	if err != nil {
		l.Warn().Err(err).Str("raw", rawText).Msg("suggestionrepo: malformed model response")
		return domain.Suggestion{}, domain.ErrNoSuggestion
	}

	return suggestion, nil
}

func parseSuggestion(raw string) (domain.Suggestion, error) {
	var suggestion domain.Suggestion
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &suggestion); err != nil {
		return domain.Suggestion{}, err
	}

	return suggestion, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk the model
// sometimes emits despite the prompt asking for raw JSON.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Keep only from the first '{' to the last '}' if there is still
	// extra text around the object.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
