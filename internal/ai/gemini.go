package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client    *genai.Client
	textModel *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Use Gemini 2.0 Flash for low latency and cost efficiency.
	textModel := client.GenerativeModel("gemini-2.0-flash")
	textModel.SetTemperature(0.7)

	// Separate model handle with JSON output forced, for classification.
	jsonModel := client.GenerativeModel("gemini-2.0-flash")
	jsonModel.ResponseMIMEType = "application/json"
	jsonModel.SetTemperature(0.1)

	return &GeminiProvider{
		client:    client,
		textModel: textModel,
		jsonModel: jsonModel,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Generate produces a plain text response for the prompt.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.textModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	text, err := collectText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ClassifyCategory asks the model for a coarse intent category in JSON mode.
func (p *GeminiProvider) ClassifyCategory(ctx context.Context, utterance string, conversationSummary string) (string, error) {
	prompt := buildCategoryPrompt(utterance, conversationSummary)

	resp, err := p.jsonModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini classification error: %w", err)
	}
	text, err := collectText(resp)
	if err != nil {
		return "", err
	}

	// Clean up potential markdown formatting (though json mode should handle this, safety first).
	cleanJSON := cleanJSONString(text)

	var result CategoryResult
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return "", fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	return strings.TrimSpace(strings.ToLower(result.Category)), nil
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String(), nil
}

// buildCategoryPrompt constructs the classification instructions for the AI.
func buildCategoryPrompt(utterance, conversationSummary string) string {
	if conversationSummary == "" {
		conversationSummary = "NONE"
	}
	return fmt.Sprintf(`Role: You are the intent classifier for "Atlas", a conversational travel planning assistant.

Conversation so far:
%s

Classify the user's latest message into EXACTLY ONE of these categories:
- flight_search: the user wants to find or compare flights.
- hotel_search: the user wants to find accommodation.
- trip_planning: the user wants an itinerary or multi-day plan.
- destination_recommendation: the user asks where to go.
- budget_inquiry: the user asks about costs or budgets without a concrete search.
- public_transport: the user asks about trains, buses, metro.
- general: anything else (greetings, small talk, unrelated questions).

RULES:
1. Mid-conversation answers to a question (a bare city name, a date) keep the
   category of the question being answered; do NOT downgrade them to general.
2. Mentioning a price cap inside a flight or hotel request is NOT budget_inquiry.
3. Output JSON only.

Output JSON Schema:
{
  "category": "flight_search" | "hotel_search" | "trip_planning" | "destination_recommendation" | "budget_inquiry" | "public_transport" | "general",
  "confidence": number between 0 and 1
}

User Message: %s
`, conversationSummary, utterance)
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
