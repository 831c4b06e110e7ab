// README: Prompt builders and degraded-mode reply templates for the chat
// pipeline.
package service

import (
	"fmt"
	"strings"

	"atlas/internal/modules/conversation"
	"atlas/internal/modules/dialogue"
	"atlas/internal/modules/search"
)

// canonicalQuestion returns the exact question to ask for a clarification.
// The wording matters: the next turn's follow-up classifier matches these
// phrases against the assistant's reply, so every generated clarification
// must end with the canonical question verbatim.
func canonicalQuestion(c *dialogue.Clarification) string {
	if c == nil {
		return ""
	}
	if c.Disambiguation != "" {
		question := fmt.Sprintf("%s covers a lot of ground. Could you specify which city you have in mind?", c.Subject)
		if len(c.Candidates) > 0 {
			question += " For example: " + strings.Join(c.Candidates, ", ") + "."
		}
		return question
	}
	switch c.Field {
	case dialogue.FieldOrigin:
		return "Where are you flying from?"
	case dialogue.FieldDestination:
		return "Where would you like to go?"
	case dialogue.FieldDepartureDate:
		return "When would you like to depart?"
	case dialogue.FieldCheckIn:
		return "When would you like to check in?"
	case dialogue.FieldCheckOut:
		return "What dates are you thinking for check-out?"
	default:
		return "Could you tell me a bit more about your trip?"
	}
}

func buildClarifyPrompt(utterance string, history []conversation.Turn, question string) string {
	var b strings.Builder
	b.WriteString("You are a friendly travel assistant.\n")
	b.WriteString("Recent conversation:\n")
	b.WriteString(flattenHistory(history))
	b.WriteString("User just said: ")
	b.WriteString(utterance)
	b.WriteString("\n\nWrite a short, warm reply (2 sentences max) that acknowledges the request.\n")
	b.WriteString("Your reply MUST end with this exact question, word for word:\n")
	b.WriteString(question)
	return b.String()
}

func buildResultsPrompt(req *search.Request, results *search.Results) string {
	var b strings.Builder
	b.WriteString("You are a travel assistant presenting search results.\n")
	b.WriteString("Search criteria:\n")
	b.WriteString(describeRequest(req))
	b.WriteString("\nResults:\n")
	b.WriteString(formatResults(results))
	b.WriteString("\nSummarize these options conversationally in under 120 words. ")
	b.WriteString("Keep every price and time exactly as given. Do not invent options.")
	return b.String()
}

func buildItineraryPrompt(utterance string, slots dialogue.ResolvedSlotSet, history []conversation.Turn) string {
	var b strings.Builder
	b.WriteString("You are a travel assistant writing a day-by-day itinerary.\n")
	dest := slots.PrimaryDestination()
	if dest != nil {
		fmt.Fprintf(&b, "Destination: %s\n", dest.Name)
	}
	if slots.DurationDays != nil {
		fmt.Fprintf(&b, "Trip length: %d days\n", *slots.DurationDays)
	}
	if slots.DepartureDate != nil {
		fmt.Fprintf(&b, "Starting: %s\n", slots.DepartureDate.Date)
	}
	b.WriteString("Recent conversation:\n")
	b.WriteString(flattenHistory(history))
	b.WriteString("User request: ")
	b.WriteString(utterance)
	b.WriteString("\n\nWrite the itinerary with one section per day, labeled Day 1, Day 2, and so on.")
	return b.String()
}

func buildConversationalPrompt(utterance string, history []conversation.Turn) string {
	var b strings.Builder
	b.WriteString("You are a knowledgeable, friendly travel assistant.\n")
	b.WriteString("Recent conversation:\n")
	b.WriteString(flattenHistory(history))
	b.WriteString("User: ")
	b.WriteString(utterance)
	b.WriteString("\n\nReply helpfully in under 120 words.")
	return b.String()
}

func flattenHistory(history []conversation.Turn) string {
	if len(history) == 0 {
		return "(none)\n"
	}
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

func describeRequest(req *search.Request) string {
	switch req.Kind {
	case search.KindFlight:
		s := fmt.Sprintf("Flights %s to %s departing %s", req.Origin, req.Destination, req.DepartureDate)
		if req.ReturnDate != nil {
			s += fmt.Sprintf(", returning %s", *req.ReturnDate)
		}
		return s + fmt.Sprintf(", %d travelers, %s, prices in %s\n", req.Passengers.Total(), req.CabinClass, req.Currency)
	case search.KindHotel:
		return fmt.Sprintf("Hotels in %s, %s to %s, %d adults, %d room(s), prices in %s\n",
			req.Destination, req.CheckIn, req.CheckOut, req.Adults, req.Rooms, req.Currency)
	}
	return ""
}

// formatResults renders results as plain text. It doubles as the degraded
// reply when text generation is unavailable.
func formatResults(results *search.Results) string {
	var b strings.Builder
	switch results.Kind {
	case search.KindFlight:
		for i, f := range results.Flights {
			fmt.Fprintf(&b, "%d. %s %s, departs %s, arrives %s, %s, %s\n",
				i+1, f.Airline, f.FlightNumber,
				f.Departure.Format("Mon 15:04"), f.Arrival.Format("Mon 15:04"),
				stopsLabel(f.Stops), f.Price)
		}
	case search.KindHotel:
		for i, h := range results.Hotels {
			fmt.Fprintf(&b, "%d. %s (%s), rated %.1f, %s per night\n",
				i+1, h.Name, h.Area, h.Rating, h.PricePerNight)
		}
	}
	if b.Len() == 0 {
		b.WriteString("No options matched the criteria.\n")
	}
	return b.String()
}

func stopsLabel(n int) string {
	if n == 0 {
		return "nonstop"
	}
	if n == 1 {
		return "1 stop"
	}
	return fmt.Sprintf("%d stops", n)
}

// Degraded replies used when a collaborator is down mid-turn.
const (
	degradedSearchReply = "I found what you asked for, but I'm having trouble phrasing it nicely right now. Here are the raw options:\n"
	degradedOutageReply = "I'm having trouble reaching the search service right now. I've kept your trip details, so please try again in a moment."
	degradedChatReply   = "I'm having a little trouble answering right now. Could you try that again in a moment?"
)
