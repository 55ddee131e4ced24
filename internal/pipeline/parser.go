package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiParser is the concrete AIParser backed by the Gemini vision
// model. Extraction accuracy is entirely the model's problem; everything
// it returns is audited downstream.
type GeminiParser struct {
	model string
}

// NewGeminiParser creates a parser for the given model name. An empty
// name falls back to DefaultModelName.
func NewGeminiParser(model string) *GeminiParser {
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiParser{model: model}
}

// ExtractRows sends the scanned ledger PDF to Gemini and returns the
// parsed JSON output as a generic map with a top-level "pages" key.
func (p *GeminiParser) ExtractRows(ctx context.Context, pdfBytes []byte) (map[string]interface{}, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("ExtractRows: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: ledgerSystemPrompt},
				{Text: "Please read this ledger and extract ALL rows of every page as described. Remember the title rows and the section headers without amounts."},
				{
					InlineData: &genai.Blob{
						MIMEType: "application/pdf",
						Data:     pdfBytes,
					},
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("ExtractRows: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("ExtractRows: empty response from model")
	}

	clean := cleanModelJSON(rawText)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("ExtractRows: unmarshal JSON: %w\nraw response: %s", err, rawText)
	}

	return parsed, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the
// model ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
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

	// Extra safety: keep only from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
