// README: Intent classifier: quick actions, mid-flow carry-over, keyword
// table, optional LLM category signal.
package dialogue

import (
	"context"
	"regexp"
	"strings"
	"time"

	"atlas/internal/modules/conversation"
)

// CategorySignaler is the coarse category collaborator (an LLM call in
// production, a stub in tests). Failures are never fatal to classification.
type CategorySignaler interface {
	ClassifyCategory(ctx context.Context, utterance string, conversationSummary string) (string, error)
}

// quickActions are fixed tokens emitted by UI affordances, not typed text.
var quickActions = map[string]IntentType{
	"find flights":          IntentFlightSearch,
	"search flights":        IntentFlightSearch,
	"hotel recommendations": IntentHotelSearch,
	"find hotels":           IntentHotelSearch,
	"plan a trip":           IntentTripPlanning,
}

// keywordTable maps trigger words to intents, checked in order so that
// "cheap flights" lands on flight_search, not budget_inquiry.
var keywordTable = []struct {
	Intent IntentType
	Words  []string
}{
	{IntentFlightSearch, []string{"flight", "flights", "fly", "flying", "airfare", "plane", "airline"}},
	{IntentHotelSearch, []string{"hotel", "hotels", "accommodation", "resort", "hostel", "airbnb", "lodging", "room"}},
	{IntentTripPlanning, []string{"itinerary", "itineraries", "plan my trip", "trip plan", "plan a trip", "day by day"}},
	{IntentPublicTransport, []string{"train", "metro", "bus", "subway", "tram", "public transport", "rail"}},
	{IntentDestinationRec, []string{"where should i go", "recommend", "suggest", "destination ideas", "somewhere to visit"}},
	{IntentBudgetInquiry, []string{"budget", "how much", "cost", "afford", "expensive", "cheap"}},
}

// dayByDayRe detects a finished itinerary in a prior assistant reply.
var dayByDayRe = regexp.MustCompile(`(?i)\bday\s*1\b`)

// Classifier combines extractor output, follow-up classification, and a
// coarse category signal into one intent from the fixed taxonomy.
type Classifier struct {
	signal CategorySignaler // optional
}

func NewClassifier(signal CategorySignaler) *Classifier {
	return &Classifier{signal: signal}
}

// Classify picks the intent for the current turn.
// prevIntent is the intent resolved for the previous turn (IntentGeneral when
// there was none); history is the bounded conversation window, oldest first.
func (c *Classifier) Classify(ctx context.Context, utterance string, extracted SlotSet, hint *FollowUpHint, prevIntent IntentType, history []conversation.Turn, ref time.Time) Intent {
	normalized := strings.ToLower(strings.TrimSpace(utterance))

	// 1. Quick-action tokens force the intent and seed slots from the most
	// recent turn that reads like a finished itinerary.
	if forced, ok := quickActions[normalized]; ok {
		seeded := extracted
		if itinerary := lastItineraryText(history); itinerary != "" {
			seeded = seedFromItinerary(itinerary, extracted, ref)
		}
		return makeIntent(forced, seeded)
	}

	// 2. Mid-flow answers keep the intent of the question being answered;
	// a generic signal must not downgrade a search back to general.
	if hint != nil && isSearchIntent(prevIntent) {
		switch hint.Slot {
		case FollowUpOrigin, FollowUpDestination, FollowUpCityForRegion, FollowUpDate:
			return makeIntent(prevIntent, extracted)
		}
	}

	// 3. Keyword table, then the LLM category signal as a tiebreaker for
	// utterances the table cannot place.
	if intent, ok := classifyByKeywords(normalized); ok {
		return makeIntent(intent, extracted)
	}

	if c.signal != nil {
		category, err := c.signal.ClassifyCategory(ctx, utterance, summarize(history))
		if err == nil {
			if intent, ok := parseIntentType(category); ok {
				return makeIntent(intent, extracted)
			}
		}
	}

	return makeIntent(IntentGeneral, extracted)
}

func classifyByKeywords(normalized string) (IntentType, bool) {
	for _, row := range keywordTable {
		for _, w := range row.Words {
			if strings.Contains(normalized, w) {
				return row.Intent, true
			}
		}
	}
	return IntentGeneral, false
}

func parseIntentType(s string) (IntentType, bool) {
	switch IntentType(strings.TrimSpace(s)) {
	case IntentFlightSearch:
		return IntentFlightSearch, true
	case IntentHotelSearch:
		return IntentHotelSearch, true
	case IntentTripPlanning:
		return IntentTripPlanning, true
	case IntentDestinationRec:
		return IntentDestinationRec, true
	case IntentBudgetInquiry:
		return IntentBudgetInquiry, true
	case IntentPublicTransport:
		return IntentPublicTransport, true
	case IntentGeneral:
		return IntentGeneral, true
	}
	return IntentGeneral, false
}

// makeIntent finalizes the intent, computing the multi-destination flag.
// Region aliases are not counted as comparison targets unless no concrete
// city was mentioned at all.
func makeIntent(t IntentType, slots SlotSet) Intent {
	concrete := 0
	for _, d := range slots.Destinations {
		if d.Concrete() {
			concrete++
		}
	}
	multi := concrete > 1
	if concrete == 0 && len(slots.Destinations) > 1 {
		multi = true
	}
	return Intent{Type: t, MultiDestination: multi, ExtractedInfo: slots}
}

// lastItineraryText finds the newest assistant reply containing a day-by-day
// marker, which is how a finished itinerary is heuristically recognized.
func lastItineraryText(history []conversation.Turn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if dayByDayRe.MatchString(history[i].AssistantText) {
			return history[i].AssistantText
		}
	}
	return ""
}

// seedFromItinerary fills slots the quick action itself cannot carry by
// re-extracting from the itinerary text. Values from the current utterance
// stay authoritative.
func seedFromItinerary(itinerary string, extracted SlotSet, ref time.Time) SlotSet {
	seed := ExtractSlots(itinerary, ref)
	out := seed
	overlay(&out, extracted)
	return out
}

// summarize flattens the recent window into the plain-text form the category
// signal expects.
func summarize(history []conversation.Turn) string {
	var b strings.Builder
	for _, t := range history {
		if t.UserText != "" {
			b.WriteString("User: ")
			b.WriteString(t.UserText)
			b.WriteByte('\n')
		}
		if t.AssistantText != "" {
			b.WriteString("Assistant: ")
			b.WriteString(t.AssistantText)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
