package ai

import (
	"context"
)

// Provider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type Provider interface {
	// Generate produces free-form text for the given prompt. The caller treats
	// the output as opaque; no structure is assumed beyond plain text.
	Generate(ctx context.Context, prompt string) (string, error)

	// ClassifyCategory returns a coarse intent category name for the utterance,
	// one of the fixed taxonomy strings (flight_search, hotel_search,
	// trip_planning, destination_recommendation, budget_inquiry,
	// public_transport, general). Unknown answers map to "general" downstream.
	ClassifyCategory(ctx context.Context, utterance string, conversationSummary string) (string, error)
}
