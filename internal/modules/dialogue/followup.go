// README: Follow-up classifier; matches the assistant's last question against
// a fixed template table to tell what slot the user is answering.
package dialogue

import (
	"strings"
)

// FollowUpSlot names the slot a follow-up answer most likely fills.
type FollowUpSlot string

const (
	FollowUpOrigin        FollowUpSlot = "origin"
	FollowUpDestination   FollowUpSlot = "destination"
	FollowUpCityForRegion FollowUpSlot = "city-for-region"
	FollowUpDate          FollowUpSlot = "date"
)

// FollowUpHint says which slot the current utterance is probably supplying.
// It is advisory: a conflicting value extracted from the current utterance
// always wins over the hint.
type FollowUpHint struct {
	Slot FollowUpSlot
}

// questionTemplates is the versioned table of questions the assistant is known
// to ask. Matching is lowercase substring containment; more specific phrases
// come first so "which city in" beats "which city".
//
// Template table version: 1.
var questionTemplates = []struct {
	Phrase string
	Slot   FollowUpSlot
}{
	{"could you specify which city", FollowUpCityForRegion},
	{"which city in", FollowUpCityForRegion},
	{"pick a specific city", FollowUpCityForRegion},
	{"which of these cities", FollowUpCityForRegion},

	{"where are you flying from", FollowUpOrigin},
	{"where will you be flying from", FollowUpOrigin},
	{"where are you traveling from", FollowUpOrigin},
	{"what is your departure city", FollowUpOrigin},
	{"which city are you starting from", FollowUpOrigin},

	{"where would you like to go", FollowUpDestination},
	{"which city would you like", FollowUpDestination},
	{"what is your destination", FollowUpDestination},
	{"where are you headed", FollowUpDestination},

	{"when would you like to depart", FollowUpDate},
	{"what dates", FollowUpDate},
	{"when are you planning to travel", FollowUpDate},
	{"when would you like to check in", FollowUpDate},
}

// ClassifyFollowUp inspects the assistant's previous reply. A nil return means
// the current utterance is not an answer to a known question.
func ClassifyFollowUp(lastAssistantText string) *FollowUpHint {
	if lastAssistantText == "" {
		return nil
	}
	lower := strings.ToLower(lastAssistantText)
	for _, tpl := range questionTemplates {
		if strings.Contains(lower, tpl.Phrase) {
			return &FollowUpHint{Slot: tpl.Slot}
		}
	}
	return nil
}

// RecoverSlots applies a hint to the current utterance. When the utterance
// already extracted a value for the hinted slot family, the extraction is
// authoritative and nothing is recovered. Otherwise the whole utterance text
// is taken as the answer to the question.
func RecoverSlots(hint *FollowUpHint, utterance string, extracted SlotSet) SlotSet {
	var s SlotSet
	if hint == nil {
		return s
	}

	switch hint.Slot {
	case FollowUpOrigin:
		if extracted.Origin != nil {
			return s
		}
		if name, ok := cleanPlace(utterance); ok {
			s.Origin = &name
		}
	case FollowUpDestination, FollowUpCityForRegion:
		if len(extracted.Destinations) > 0 {
			return s
		}
		if name, ok := cleanPlace(utterance); ok {
			s.Destinations = []Place{classifyPlace(name)}
		}
	case FollowUpDate:
		// Dates are never free-text; extraction either found one or the
		// answer was not a date.
	}
	return s
}
