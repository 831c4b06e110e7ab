// README: Intent classifier tests: quick actions, mid-flow carry, keywords,
// multi-destination flag, signal fallback.
package dialogue

import (
	"context"
	"errors"
	"testing"

	"atlas/internal/modules/conversation"
)

// stubSignal is a canned category collaborator.
type stubSignal struct {
	category string
	err      error
	calls    int
}

func (s *stubSignal) ClassifyCategory(_ context.Context, _ string, _ string) (string, error) {
	s.calls++
	return s.category, s.err
}

func TestClassifyKeywords(t *testing.T) {
	c := NewClassifier(nil)
	cases := []struct {
		utterance string
		want      IntentType
	}{
		{"I need flights to Tokyo", IntentFlightSearch},
		{"any good hotels in Bali?", IntentHotelSearch},
		{"build me an itinerary for Rome", IntentTripPlanning},
		{"how do I take the metro there", IntentPublicTransport},
		{"recommend somewhere warm", IntentDestinationRec},
		{"how much would that cost", IntentBudgetInquiry},
	}
	for _, tc := range cases {
		got := c.Classify(context.Background(), tc.utterance, ExtractSlots(tc.utterance, ref), nil, IntentGeneral, nil, ref)
		if got.Type != tc.want {
			t.Errorf("%q: intent = %s, want %s", tc.utterance, got.Type, tc.want)
		}
	}
}

func TestClassifyCheapFlightsIsFlightSearch(t *testing.T) {
	// Keyword rows are ordered; the flight row fires before budget_inquiry.
	c := NewClassifier(nil)
	got := c.Classify(context.Background(), "cheap flights to Bangkok", SlotSet{}, nil, IntentGeneral, nil, ref)
	if got.Type != IntentFlightSearch {
		t.Errorf("intent = %s, want %s", got.Type, IntentFlightSearch)
	}
}

func TestClassifyQuickAction(t *testing.T) {
	c := NewClassifier(nil)
	got := c.Classify(context.Background(), "Find Flights", SlotSet{}, nil, IntentGeneral, nil, ref)
	if got.Type != IntentFlightSearch {
		t.Errorf("intent = %s, want %s", got.Type, IntentFlightSearch)
	}
}

func TestClassifyQuickActionSeedsFromItinerary(t *testing.T) {
	c := NewClassifier(nil)
	history := []conversation.Turn{
		{UserText: "plan a trip", AssistantText: "Day 1: arrive in Kyoto and rest. Day 2: temples."},
	}
	got := c.Classify(context.Background(), "find flights", SlotSet{}, nil, IntentGeneral, history, ref)
	if got.Type != IntentFlightSearch {
		t.Fatalf("intent = %s", got.Type)
	}
	if len(got.ExtractedInfo.Destinations) != 1 || got.ExtractedInfo.Destinations[0].Name != "Kyoto" {
		t.Errorf("seeded destinations = %v, want Kyoto from itinerary", got.ExtractedInfo.Destinations)
	}
}

func TestClassifyMidFlowCarry(t *testing.T) {
	// A bare city answering an origin question keeps the flight intent even
	// though the utterance has no flight keyword.
	c := NewClassifier(&stubSignal{category: "general"})
	hint := &FollowUpHint{Slot: FollowUpOrigin}
	got := c.Classify(context.Background(), "Mumbai", SlotSet{}, hint, IntentFlightSearch, nil, ref)
	if got.Type != IntentFlightSearch {
		t.Errorf("intent = %s, want carried %s", got.Type, IntentFlightSearch)
	}
}

func TestClassifyHintWithoutSearchFlowDoesNotCarry(t *testing.T) {
	c := NewClassifier(nil)
	hint := &FollowUpHint{Slot: FollowUpOrigin}
	got := c.Classify(context.Background(), "Mumbai", SlotSet{}, hint, IntentGeneral, nil, ref)
	if got.Type != IntentGeneral {
		t.Errorf("intent = %s, want %s", got.Type, IntentGeneral)
	}
}

func TestClassifySignalFallback(t *testing.T) {
	sig := &stubSignal{category: string(IntentDestinationRec)}
	c := NewClassifier(sig)
	got := c.Classify(context.Background(), "somewhere with beaches and good food", SlotSet{}, nil, IntentGeneral, nil, ref)
	if got.Type != IntentDestinationRec {
		t.Errorf("intent = %s, want %s", got.Type, IntentDestinationRec)
	}
	if sig.calls != 1 {
		t.Errorf("signal calls = %d, want 1", sig.calls)
	}
}

func TestClassifySignalErrorIsNotFatal(t *testing.T) {
	c := NewClassifier(&stubSignal{err: errors.New("quota exceeded")})
	got := c.Classify(context.Background(), "hmm not sure yet", SlotSet{}, nil, IntentGeneral, nil, ref)
	if got.Type != IntentGeneral {
		t.Errorf("intent = %s, want %s on signal failure", got.Type, IntentGeneral)
	}
}

func TestClassifyBogusSignalCategory(t *testing.T) {
	c := NewClassifier(&stubSignal{category: "shopping_spree"})
	got := c.Classify(context.Background(), "hmm", SlotSet{}, nil, IntentGeneral, nil, ref)
	if got.Type != IntentGeneral {
		t.Errorf("intent = %s, want %s for unknown category", got.Type, IntentGeneral)
	}
}

func TestMultiDestinationFlag(t *testing.T) {
	c := NewClassifier(nil)
	slots := ExtractSlots("compare flights to Paris, London, and Tokyo", ref)
	got := c.Classify(context.Background(), "compare flights to Paris, London, and Tokyo", slots, nil, IntentGeneral, nil, ref)
	if got.Type != IntentFlightSearch {
		t.Fatalf("intent = %s", got.Type)
	}
	if !got.MultiDestination {
		t.Error("three concrete cities must set the multi-destination flag")
	}
	if len(got.ExtractedInfo.Destinations) != 3 {
		t.Fatalf("destinations = %v", got.ExtractedInfo.Destinations)
	}
}

func TestMultiDestinationIgnoresRegionAlongsideCity(t *testing.T) {
	got := makeIntent(IntentFlightSearch, SlotSet{
		Destinations: []Place{
			{Name: "Paris"},
			{Name: "Europe", IsRegion: true},
		},
	})
	if got.MultiDestination {
		t.Error("one concrete city plus a region is not a comparison")
	}
}

func TestMultiDestinationAllRegions(t *testing.T) {
	got := makeIntent(IntentFlightSearch, SlotSet{
		Destinations: []Place{
			{Name: "Europe", IsRegion: true},
			{Name: "Asia", IsRegion: true},
		},
	})
	if !got.MultiDestination {
		t.Error("two regions and no concrete city still reads as a comparison")
	}
}
