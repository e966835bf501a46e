// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
)

// GeminiService implements the adapter.AIService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
	timeout   time.Duration
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string, timeout time.Duration) *GeminiService {
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		timeout:   timeout,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// SuggestCategory asks Gemini to pick a single category for a transaction.
func (s *GeminiService) SuggestCategory(ctx context.Context, request *adapter.CategorizationRequest) (string, error) {
	text, err := s.generate(ctx, s.buildCategorizationPrompt(request))
	if err != nil {
		return "", err
	}

	category := parseCategoryResponse(text)
	if category == "" {
		return "", fmt.Errorf("no category in response: %s", text)
	}
	return entity.NormalizeCategory(category), nil
}

// GenerateInsights asks Gemini for spending observations over a summary.
func (s *GeminiService) GenerateInsights(ctx context.Context, request *adapter.InsightsRequest) ([]string, error) {
	text, err := s.generate(ctx, s.buildInsightsPrompt(request))
	if err != nil {
		return nil, err
	}

	insights := parseInsightsResponse(text)
	if len(insights) == 0 {
		return nil, fmt.Errorf("no insights in response: %s", text)
	}
	if len(insights) > request.MaxInsights && request.MaxInsights > 0 {
		insights = insights[:request.MaxInsights]
	}
	return insights, nil
}

// generate sends a prompt to the model and returns the raw text content.
func (s *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return "", fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	return strings.TrimSpace(textContent), nil
}

// buildCategorizationPrompt creates the category-selection prompt.
func (s *GeminiService) buildCategorizationPrompt(request *adapter.CategorizationRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a personal finance assistant. Pick exactly one category for the transaction below.\n\n")
	sb.WriteString("ALLOWED CATEGORIES (respond with one of these, nothing else):\n")
	categories := request.Categories
	if len(categories) == 0 {
		categories = entity.Categories()
	}
	for _, cat := range categories {
		sb.WriteString("- " + cat + "\n")
	}

	sb.WriteString("\nTRANSACTION:\n")
	sb.WriteString(fmt.Sprintf("- Description: %q\n", request.Description))
	if request.Amount != nil {
		sb.WriteString(fmt.Sprintf("- Amount: %s\n", request.Amount.StringFixed(2)))
	}
	if request.Channel != "" {
		sb.WriteString(fmt.Sprintf("- Channel: %s\n", request.Channel))
	}
	if request.RawText != "" {
		sb.WriteString(fmt.Sprintf("- Original message: %q\n", request.RawText))
	}

	sb.WriteString(`
RESPONSE FORMAT: a JSON string holding the category name, for example "Food".
If unsure, respond with "Other".
`)

	return sb.String()
}

// buildInsightsPrompt creates the spending-observations prompt.
func (s *GeminiService) buildInsightsPrompt(request *adapter.InsightsRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a personal finance assistant. Write short, concrete observations about the spending summary below.\n\n")
	sb.WriteString(fmt.Sprintf("PERIOD: %s\n", request.Period))
	sb.WriteString(fmt.Sprintf("TOTAL SPENT: %s\n", request.Total.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("TRANSACTION COUNT: %d\n", request.TransactionCount))

	sb.WriteString("\nSPEND BY CATEGORY:\n")
	for category, amount := range request.ByCategory {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", category, amount.StringFixed(2)))
	}

	if len(request.TopDescriptions) > 0 {
		sb.WriteString("\nLARGEST TRANSACTIONS:\n")
		for _, desc := range request.TopDescriptions {
			sb.WriteString("- " + desc + "\n")
		}
	}

	sb.WriteString(fmt.Sprintf(`
Write at most %d observations. Each observation is one sentence, specific to
the numbers above, no advice or moralizing.

RESPONSE FORMAT: a JSON array of strings, for example ["...", "..."].
`, request.MaxInsights))

	return sb.String()
}

// parseCategoryResponse extracts a category label from the model output.
// Models answer with a bare JSON string, a quoted word, or an object like
// {"category": "Food"}; all three shapes are accepted.
func parseCategoryResponse(text string) string {
	var asString string
	if err := json.Unmarshal([]byte(text), &asString); err == nil {
		return strings.TrimSpace(asString)
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &asObject); err == nil {
		for _, key := range []string{"category", "suggestion", "label"} {
			if raw, ok := asObject[key]; ok {
				var value string
				if err := json.Unmarshal(raw, &value); err == nil {
					return strings.TrimSpace(value)
				}
			}
		}
		return ""
	}

	// Plain text despite the JSON MIME type request.
	return strings.Trim(strings.TrimSpace(text), `"`)
}

// parseInsightsResponse extracts observation strings from the model output.
// Accepts a JSON array of strings, an array of objects carrying a text
// field, or an object wrapping either under "insights".
func parseInsightsResponse(text string) []string {
	var asStrings []string
	if err := json.Unmarshal([]byte(text), &asStrings); err == nil {
		return compactStrings(asStrings)
	}

	var asObjects []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &asObjects); err == nil {
		out := make([]string, 0, len(asObjects))
		for _, obj := range asObjects {
			for _, key := range []string{"text", "insight", "observation", "message"} {
				if raw, ok := obj[key]; ok {
					var value string
					if err := json.Unmarshal(raw, &value); err == nil && strings.TrimSpace(value) != "" {
						out = append(out, strings.TrimSpace(value))
						break
					}
				}
			}
		}
		return out
	}

	var wrapper struct {
		Insights json.RawMessage `json:"insights"`
	}
	if err := json.Unmarshal([]byte(text), &wrapper); err == nil && len(wrapper.Insights) > 0 {
		return parseInsightsResponse(string(wrapper.Insights))
	}

	return nil
}

func compactStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
