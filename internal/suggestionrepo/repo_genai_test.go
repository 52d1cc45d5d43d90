package suggestionrepo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
)

func TestParseSuggestion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		raw     string
		want    domain.Suggestion
		wantErr bool
	}{
		{
			name: "RawJSON",
			raw:  `{"category": "Продукти", "confidence": 0.92}`,
			want: domain.Suggestion{Category: "Продукти", Confidence: 0.92},
		},
		{
			name: "FencedJSON",
			raw:  "```json\n{\"category\": \"Транспорт\", \"confidence\": 0.7}\n```",
			want: domain.Suggestion{Category: "Транспорт", Confidence: 0.7},
		},
		{
			name: "FencedWithoutLanguage",
			raw:  "```\n{\"category\": \"Розваги\", \"confidence\": 0.61}\n```",
			want: domain.Suggestion{Category: "Розваги", Confidence: 0.61},
		},
		{
			name: "SurroundingText",
			raw:  "Sure, here is the classification:\n{\"category\": \"Здоров'я\", \"confidence\": 0.85}\nHope this helps!",
			want: domain.Suggestion{Category: "Здоров'я", Confidence: 0.85},
		},
		{
			name:    "NotJSON",
			raw:     "I could not classify this description.",
			wantErr: true,
		},
		{
			name:    "Empty",
			raw:     "",
			wantErr: true,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseSuggestion(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseSuggestion(%q) returned nil error, want error", tc.raw)
				}

				return
			}

			if err != nil {
				t.Fatalf("parseSuggestion(%q) returned error: %v", tc.raw, err)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("parseSuggestion(%q) returned unexpected diff: %v", tc.raw, diff)
			}
		})
	}
}

func TestCleanModelJSON(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"category\": \"Інше\", \"confidence\": 0.4}\n```"
	want := `{"category": "Інше", "confidence": 0.4}`

	if got := cleanModelJSON(raw); got != want {
		t.Errorf("cleanModelJSON(%q) = %q, want %q", raw, got, want)
	}
}
