// README: Interactive console demo; full chat pipeline with in-memory stores
// and mock search providers (Gemini is the only external call).
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"atlas/internal/ai"
	"atlas/internal/geo"
	"atlas/internal/modules/conversation"
	"atlas/internal/modules/dialogue"
	"atlas/internal/modules/profile"
	"atlas/internal/modules/search"
	"atlas/internal/service"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	resolver := dialogue.NewResolver(
		dialogue.NewClassifier(provider),
		&geo.StaticCurrencyResolver{Fallback: "USD"},
		dialogue.ResolverOpts{},
	)
	chat := service.NewChatService(
		resolver,
		provider,
		search.MockFlights{},
		search.MockHotels{},
		profile.NewService(profile.NewMemoryStore()),
		conversation.NewMemoryStore(32),
		service.ChatOpts{},
	)

	fmt.Println("Travel assistant demo. Type a message, or 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		msg := strings.TrimSpace(scanner.Text())
		if msg == "" {
			continue
		}
		if msg == "quit" || msg == "exit" {
			break
		}

		res, err := chat.Chat(ctx, service.ChatRequest{
			SessionID: "demo-session",
			UserID:    "demo-user",
			Message:   msg,
		})
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("[%s/%s] %s\n", res.Intent, res.Outcome, res.Reply)
	}
}
