// README: ChatService flow tests with in-memory stores and mock providers.
package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"atlas/internal/modules/conversation"
	"atlas/internal/modules/dialogue"
	"atlas/internal/modules/profile"
	"atlas/internal/modules/search"
)

// echoAI returns the prompt as the reply, so assertions can see exactly what
// the pipeline asked for. The canonical clarification question is embedded in
// the prompt, which keeps follow-up classification working across turns.
type echoAI struct {
	genErr  error
	prompts []string
}

func (a *echoAI) Generate(_ context.Context, prompt string) (string, error) {
	a.prompts = append(a.prompts, prompt)
	if a.genErr != nil {
		return "", a.genErr
	}
	return prompt, nil
}

func (a *echoAI) ClassifyCategory(_ context.Context, _ string, _ string) (string, error) {
	return "general", nil
}

type fixedCurrency struct{ code string }

func (f fixedCurrency) CurrencyFor(_ context.Context, _ string) (string, error) {
	return f.code, nil
}

type failingProvider struct{}

func (failingProvider) Search(_ context.Context, _ search.Request) (*search.Results, error) {
	return nil, errors.New("upstream timeout")
}

type chatFixture struct {
	svc      *ChatService
	ai       *echoAI
	turns    *conversation.MemoryStore
	profiles *profile.MemoryStore
}

func newChatFixture(t *testing.T, flights, hotels search.Provider) *chatFixture {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC) }
	resolver := dialogue.NewResolver(dialogue.NewClassifier(nil), fixedCurrency{code: "USD"}, dialogue.ResolverOpts{Clock: clock})

	aiStub := &echoAI{}
	turns := conversation.NewMemoryStore(32)
	profiles := profile.NewMemoryStore()
	svc := NewChatService(resolver, aiStub, flights, hotels, profile.NewService(profiles), turns, ChatOpts{Clock: clock})
	return &chatFixture{svc: svc, ai: aiStub, turns: turns, profiles: profiles}
}

func TestChatRejectsEmptySession(t *testing.T) {
	f := newChatFixture(t, search.MockFlights{}, search.MockHotels{})
	if _, err := f.svc.Chat(context.Background(), ChatRequest{Message: "hi"}); !errors.Is(err, conversation.ErrBadRequest) {
		t.Fatalf("err = %v, want bad request", err)
	}
}

func TestChatMissingSlotAsksOneQuestion(t *testing.T) {
	f := newChatFixture(t, search.MockFlights{}, search.MockHotels{})
	res, err := f.svc.Chat(context.Background(), ChatRequest{
		SessionID: "s1", UserID: "u1",
		Message: "flights to Tokyo on 2026-12-13",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if res.Outcome != string(dialogue.OutcomeMissingSlot) {
		t.Fatalf("outcome = %s", res.Outcome)
	}
	if !strings.Contains(res.Reply, "Where are you flying from?") {
		t.Errorf("reply must carry the canonical origin question, got %q", res.Reply)
	}
	if res.Results != nil {
		t.Error("no provider may run before the slots are complete")
	}

	turns, err := f.turns.Recent(context.Background(), "s1", 10)
	if err != nil || len(turns) != 1 {
		t.Fatalf("turns = %v, %v", turns, err)
	}
	if turns[0].UserText != "flights to Tokyo on 2026-12-13" {
		t.Errorf("stored turn = %+v", turns[0])
	}
}

func TestChatFollowUpCompletesSearch(t *testing.T) {
	f := newChatFixture(t, search.MockFlights{}, search.MockHotels{})
	ctx := context.Background()

	if _, err := f.svc.Chat(ctx, ChatRequest{SessionID: "s1", UserID: "u1", Message: "flights to Tokyo on 2026-12-13"}); err != nil {
		t.Fatal(err)
	}
	res, err := f.svc.Chat(ctx, ChatRequest{SessionID: "s1", UserID: "u1", Message: "Mumbai"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if res.Outcome != string(dialogue.OutcomeReady) {
		t.Fatalf("outcome = %s, reply = %q", res.Outcome, res.Reply)
	}
	if res.Intent != string(dialogue.IntentFlightSearch) {
		t.Errorf("intent = %s", res.Intent)
	}
	if res.Results == nil || res.Results.Kind != search.KindFlight || len(res.Results.Flights) == 0 {
		t.Fatalf("results = %+v", res.Results)
	}
	if !strings.Contains(res.Reply, "Mumbai to Tokyo") {
		t.Errorf("reply should describe the searched route, got %q", res.Reply)
	}
}

func TestChatLearnsHomeCity(t *testing.T) {
	f := newChatFixture(t, search.MockFlights{}, search.MockHotels{})
	ctx := context.Background()

	if _, err := f.svc.Chat(ctx, ChatRequest{SessionID: "s1", UserID: "u1", Message: "flights to Tokyo on 2026-12-13"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Chat(ctx, ChatRequest{SessionID: "s1", UserID: "u1", Message: "Mumbai"}); err != nil {
		t.Fatal(err)
	}

	p, err := f.profiles.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.HomeCity != "Mumbai" {
		t.Errorf("home city = %q, want the answered origin", p.HomeCity)
	}
}

func TestChatProviderOutageDegrades(t *testing.T) {
	f := newChatFixture(t, failingProvider{}, search.MockHotels{})
	res, err := f.svc.Chat(context.Background(), ChatRequest{
		SessionID: "s1", UserID: "u1",
		Message: "flights from Delhi to Tokyo on 2026-12-13",
	})
	if err != nil {
		t.Fatalf("outage must degrade, not fail the turn: %v", err)
	}
	if !res.Degraded {
		t.Error("degraded flag not set")
	}
	if res.Intent != string(dialogue.IntentFlightSearch) {
		t.Errorf("intent = %s, the failure context must be preserved", res.Intent)
	}

	// The turn is still recorded so the slots survive for a retry.
	turns, _ := f.turns.Recent(context.Background(), "s1", 10)
	if len(turns) != 1 {
		t.Fatalf("turns = %v", turns)
	}
}

func TestChatPhrasingOutageReturnsRawResults(t *testing.T) {
	f := newChatFixture(t, search.MockFlights{}, search.MockHotels{})
	f.ai.genErr = errors.New("model overloaded")
	res, err := f.svc.Chat(context.Background(), ChatRequest{
		SessionID: "s1", UserID: "u1",
		Message: "flights from Delhi to Tokyo on 2026-12-13",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Degraded || res.Results == nil {
		t.Fatalf("res = %+v, want degraded reply with raw results attached", res)
	}
}

func TestChatConversationalTurn(t *testing.T) {
	f := newChatFixture(t, search.MockFlights{}, search.MockHotels{})
	res, err := f.svc.Chat(context.Background(), ChatRequest{SessionID: "s1", UserID: "u1", Message: "thanks, that was helpful!"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != string(dialogue.OutcomeConversational) {
		t.Errorf("outcome = %s", res.Outcome)
	}
	if res.Results != nil {
		t.Error("conversational turns never search")
	}
}
