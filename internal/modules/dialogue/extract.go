// README: Pure entity extractors: dates, passengers, places, duration, price.
package dialogue

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"atlas/internal/types"
)

// ExtractSlots runs every extractor over one utterance and overlays their
// partial results. Extractors are pure and independent, so they run
// concurrently; each writes a disjoint set of fields.
// ref supplies the calendar year for holiday and bare-month resolution; the
// utterance text itself is the only other input.
func ExtractSlots(text string, ref time.Time) SlotSet {
	partials := make([]SlotSet, 5)
	extractors := []func(string) SlotSet{
		func(t string) SlotSet { return ExtractDates(t, ref) },
		ExtractPassengers,
		ExtractPlaces,
		ExtractDuration,
		ExtractPriceFilters,
	}

	var wg sync.WaitGroup
	for i, fn := range extractors {
		wg.Add(1)
		go func(i int, fn func(string) SlotSet) {
			defer wg.Done()
			partials[i] = fn(text)
		}(i, fn)
	}
	wg.Wait()

	var out SlotSet
	for _, p := range partials {
		overlay(&out, p)
	}
	return out
}

// overlay copies present fields of p into out. Extractors own disjoint
// fields, so no precedence is involved here.
func overlay(out *SlotSet, p SlotSet) {
	if p.Origin != nil {
		out.Origin = p.Origin
	}
	if len(p.Destinations) > 0 {
		out.Destinations = p.Destinations
	}
	if p.DepartureDate != nil {
		out.DepartureDate = p.DepartureDate
	}
	if p.ReturnDate != nil {
		out.ReturnDate = p.ReturnDate
	}
	if p.Passengers != nil {
		out.Passengers = p.Passengers
	}
	if p.CheckIn != nil {
		out.CheckIn = p.CheckIn
	}
	if p.CheckOut != nil {
		out.CheckOut = p.CheckOut
	}
	if p.DurationDays != nil {
		out.DurationDays = p.DurationDays
	}
	if p.Price.MaxPrice != nil {
		out.Price.MaxPrice = p.Price.MaxPrice
	}
	if p.Price.MaxStops != nil {
		out.Price.MaxStops = p.Price.MaxStops
	}
}

// ── Dates ───────────────────────────────────────────────────────────────────

var (
	isoDateRe = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)

	// "dec 13 to dec 21", "december 13 - 21", "jun 2 until 6"
	monthRangeRe = regexp.MustCompile(`(?i)\b([a-z]{3,9})\.?\s+(\d{1,2})(?:st|nd|rd|th)?\s*(?:to|until|through|till|-|–)\s*(?:([a-z]{3,9})\.?\s+)?(\d{1,2})(?:st|nd|rd|th)?\b`)

	// "dec 13", "june 2nd"
	monthDayRe = regexp.MustCompile(`(?i)\b([a-z]{3,9})\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`)

	// A month word anchors a window only in a date-ish context: after a
	// lead-in word, or with a trailing day number. "May" and "march" used
	// as verbs must not produce a date.
	bareMonthRe = regexp.MustCompile(`(?i)\b(?:in|for|during|around|by|before|until|till|about|maybe|early|late|mid|this|next|sometime)\s+([a-z]{3,9})\b|\b([a-z]{3,9})\s+\d{1,2}\b`)
)

// holidayOrder fixes lookup order so longer names win ("new years" before
// "new year").
var holidayOrder = []string{"new years", "new year", "christmas", "diwali"}

// ExtractDates scans for travel dates. Priority when several patterns appear
// in one utterance: explicit ISO date > explicit month range > single
// month+day > holiday name > bare month mention. Unparseable candidates are
// skipped, never defaulted.
func ExtractDates(text string, ref time.Time) SlotSet {
	var s SlotSet
	year := ref.Year()

	// Explicit ISO dates. First valid hit is the departure, second the return.
	var isoDates []types.Date
	for _, m := range isoDateRe.FindAllString(text, 3) {
		d, err := types.ParseDate(m)
		if err != nil {
			continue
		}
		isoDates = append(isoDates, d)
	}
	if len(isoDates) > 0 {
		s.DepartureDate = &DateValue{Date: isoDates[0], Explicit: true}
		if len(isoDates) > 1 {
			s.ReturnDate = &DateValue{Date: isoDates[1], Explicit: true}
		}
		return s
	}

	// Named-month range.
	if m := monthRangeRe.FindStringSubmatch(text); m != nil {
		start, okStart := monthDay(m[1], m[2], year)
		endMonth := m[1]
		if m[3] != "" {
			endMonth = m[3]
		}
		end, okEnd := monthDay(endMonth, m[4], year)
		if okStart && okEnd {
			s.DepartureDate = &DateValue{Date: start, Explicit: true}
			if start.Before(end) {
				s.ReturnDate = &DateValue{Date: end, Explicit: true}
			}
			return s
		}
	}

	// Single month + day.
	if m := monthDayRe.FindStringSubmatch(text); m != nil {
		if d, ok := monthDay(m[1], m[2], year); ok {
			s.DepartureDate = &DateValue{Date: d, Explicit: true}
			return s
		}
	}

	// Named holiday, mapped to a fixed window in the reference year.
	lower := strings.ToLower(text)
	for _, name := range holidayOrder {
		h, ok := holidays[name]
		if !ok || !strings.Contains(lower, name) {
			continue
		}
		endYear := year
		if h.spansYear {
			endYear = year + 1
		}
		s.DepartureDate = &DateValue{Date: types.NewDate(year, h.startMonth, h.startDay)}
		s.ReturnDate = &DateValue{Date: types.NewDate(endYear, h.endMonth, h.endDay)}
		return s
	}

	// Bare month mention: default to day 1-7 of that month.
	for _, m := range bareMonthRe.FindAllStringSubmatch(text, -1) {
		word := m[1]
		if word == "" {
			word = m[2]
		}
		month, ok := monthsByName[strings.ToLower(word)]
		if !ok {
			continue
		}
		s.DepartureDate = &DateValue{Date: types.NewDate(year, month, 1)}
		s.ReturnDate = &DateValue{Date: types.NewDate(year, month, 7)}
		return s
	}

	return s
}

func monthDay(monthWord, dayWord string, year int) (types.Date, bool) {
	month, ok := monthsByName[strings.ToLower(monthWord)]
	if !ok {
		return types.Date{}, false
	}
	day, err := strconv.Atoi(dayWord)
	if err != nil {
		return types.Date{}, false
	}
	d := types.NewDate(year, month, day)
	// Reject impossible dates like "feb 30".
	if _, err := types.ParseDate(d.String()); err != nil {
		return types.Date{}, false
	}
	return d, true
}

// ── Passengers ──────────────────────────────────────────────────────────────

var (
	adultsRe   = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:people|persons?|passengers?|travell?ers?|adults?|pax)\b`)
	childrenRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:children|child|kids?)\b`)
	infantsRe  = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:infants?|babies|baby)\b`)
)

// ExtractPassengers picks up integer counts followed by a traveler noun.
// Absent counts stay nil; the default party is applied at merge time only.
func ExtractPassengers(text string) SlotSet {
	var s SlotSet
	var p types.Passengers
	found := false

	if m := adultsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.Adults = n
			found = true
		}
	}
	if m := childrenRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.Children = n
			found = true
		}
	}
	if m := infantsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.Infants = n
			found = true
		}
	}

	if found {
		// All-zero counts are noise; leave the slot unset so the merge
		// default applies.
		if p.Adults == 0 && p.Children == 0 && p.Infants == 0 {
			return s
		}
		s.Passengers = &p
	}
	return s
}

// ── Places ──────────────────────────────────────────────────────────────────

const placeChars = `[a-zA-Z][a-zA-Z .'’-]*?`

var (
	// A trailing digit terminates a place capture so "to Tokyo dec 13"
	// stops at the city (the stray month word is trimmed during cleaning).
	fromToRe = regexp.MustCompile(`(?i)\bfrom\s+(` + placeChars + `)\s+to\s+(` + placeChars + `)(?:\s+(?:on|in|for|by|with|and|or|around|this|next|during|departing|leaving|between)\b|\s+\d|\s*[,.!?;:]|$)`)
	fromRe   = regexp.MustCompile(`(?i)\bfrom\s+(` + placeChars + `)(?:\s+(?:on|in|for|by|with|and|or|around|this|next|during|departing|leaving|to)\b|\s+\d|\s*[,.!?;:]|$)`)
	toRe     = regexp.MustCompile(`(?i)\bto\s+(` + placeChars + `)(?:\s+(?:on|in|for|by|with|and|or|around|this|next|during|departing|leaving|from)\b|\s+\d|\s*[,.!?;:]|$)`)
	inRe     = regexp.MustCompile(`(?i)\b(?:in|at|near)\s+(` + placeChars + `)(?:\s+(?:on|in|for|by|with|and|or|around|this|next|during|from|between)\b|\s+\d|\s*[,.!?;:]|$)`)

	travelingFromRe = regexp.MustCompile(`(?i)\btravell?ing from:\s*([^\n,;]+)`)
	destinationRe   = regexp.MustCompile(`(?i)\bdestination:\s*([^\n,;]+)`)
	labeledFromRe   = regexp.MustCompile(`(?i)\bfrom:\s*([^\n,;]+)`)
	labeledToRe     = regexp.MustCompile(`(?i)\bto:\s*([^\n,;]+)`)

	compareListRe = regexp.MustCompile(`(?i)\b(?:to|between|of)\s+(.+)$`)
	listSplitRe   = regexp.MustCompile(`(?i)\s*(?:,|\band\b|\bor\b|/)\s*`)
)

// verbs and fillers that regex capture groups must not mistake for places.
var placeStopWords = map[string]bool{
	"go": true, "travel": true, "fly": true, "visit": true, "see": true,
	"book": true, "find": true, "plan": true, "stay": true, "get": true,
	"compare": true, "know": true, "leave": true, "be": true, "do": true,
	"the": true, "a": true, "an": true, "my": true, "me": true,
	"please": true, "thanks": true,
}

// ExtractPlaces recognizes origin/destination mentions. Pattern families in
// priority order: "from X to Y", "to X" alone, labeled fields, and a
// list-style fallback for comparison phrasing. Region and country names are
// kept as provisional destinations with their flags set.
func ExtractPlaces(text string) SlotSet {
	var s SlotSet

	// Comparison phrasing yields an ordered multi-destination list.
	if containsWord(text, "compare") || containsWord(text, "versus") || containsWord(text, "vs") {
		if m := fromRe.FindStringSubmatch(text); m != nil {
			if name, ok := cleanPlace(m[1]); ok {
				s.Origin = &name
			}
		}
		if m := compareListRe.FindStringSubmatch(text); m != nil {
			s.Destinations = splitPlaceList(m[1])
		}
		if len(s.Destinations) > 1 {
			return s
		}
		s.Destinations = nil
	}

	if m := fromToRe.FindStringSubmatch(text); m != nil {
		origin, okO := cleanPlace(m[1])
		dest, okD := cleanPlace(m[2])
		if okO && okD {
			s.Origin = &origin
			s.Destinations = []Place{classifyPlace(dest)}
			return s
		}
	}

	if m := matchFirstPlace(toRe, text); m != "" {
		s.Destinations = []Place{classifyPlace(m)}
		if o := matchFirstPlace(fromRe, text); o != "" {
			s.Origin = &o
		}
		return s
	}

	// Structured, labeled input ("Traveling from: Delhi", "Destination: Bali").
	if m := travelingFromRe.FindStringSubmatch(text); m != nil {
		if name, ok := cleanPlace(m[1]); ok {
			s.Origin = &name
		}
	} else if m := labeledFromRe.FindStringSubmatch(text); m != nil {
		if name, ok := cleanPlace(m[1]); ok {
			s.Origin = &name
		}
	}
	if m := destinationRe.FindStringSubmatch(text); m != nil {
		if name, ok := cleanPlace(m[1]); ok {
			s.Destinations = []Place{classifyPlace(name)}
		}
	} else if m := labeledToRe.FindStringSubmatch(text); m != nil {
		if name, ok := cleanPlace(m[1]); ok {
			s.Destinations = []Place{classifyPlace(name)}
		}
	}
	if s.Origin != nil || len(s.Destinations) > 0 {
		return s
	}

	// "hotels in Bali", "a week near Kyoto".
	if m := matchFirstPlace(inRe, text); m != "" {
		s.Destinations = []Place{classifyPlace(m)}
		if o := matchFirstPlace(fromRe, text); o != "" {
			s.Origin = &o
		}
		return s
	}

	if o := matchFirstPlace(fromRe, text); o != "" {
		s.Origin = &o
	}
	return s
}

// matchFirstPlace returns the first capture of re that survives place
// cleaning. On a rejected capture it rescans just past the failed keyword,
// so nested phrasing like "to go to Paris" still yields the inner place.
func matchFirstPlace(re *regexp.Regexp, text string) string {
	rest := text
	for i := 0; i < 5; i++ {
		loc := re.FindStringSubmatchIndex(rest)
		if loc == nil || loc[2] < 0 {
			return ""
		}
		if name, ok := cleanPlace(rest[loc[2]:loc[3]]); ok {
			return name
		}
		rest = rest[loc[0]+1:]
	}
	return ""
}

func splitPlaceList(raw string) []Place {
	var out []Place
	for _, part := range listSplitRe.Split(raw, -1) {
		name, ok := cleanPlace(part)
		if !ok {
			continue
		}
		out = append(out, classifyPlace(name))
	}
	return out
}

// cleanPlace trims a raw capture down to a plausible place name. It rejects
// stop-words, month names, and leftovers that are clearly not places.
func cleanPlace(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, ".,!?;:'\"")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}

	words := strings.Fields(name)
	// Drop trailing calendar words picked up by greedy captures.
	for len(words) > 0 {
		last := strings.ToLower(words[len(words)-1])
		if _, isMonth := monthsByName[last]; isMonth || placeStopWords[last] {
			words = words[:len(words)-1]
			continue
		}
		break
	}
	if len(words) == 0 || len(words) > 4 {
		return "", false
	}

	first := strings.ToLower(words[0])
	if placeStopWords[first] {
		return "", false
	}
	if _, isMonth := monthsByName[first]; isMonth {
		return "", false
	}
	if _, err := strconv.Atoi(first); err == nil {
		return "", false
	}

	return strings.Join(words, " "), true
}

func containsWord(text, word string) bool {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	return re.MatchString(text)
}

func normalizePlaceKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "the ")
	return key
}

// ── Duration ────────────────────────────────────────────────────────────────

var (
	daysRe  = regexp.MustCompile(`(?i)\b(\d{1,3})[\s-]*(?:days?|nights?)\b`)
	weeksRe = regexp.MustCompile(`(?i)\b(\d{1,2})[\s-]*weeks?\b`)
	aWeekRe = regexp.MustCompile(`(?i)\ba week\b`)
)

// ExtractDuration picks up trip lengths ("5 days", "2 weeks", "a week").
func ExtractDuration(text string) SlotSet {
	var s SlotSet
	if m := daysRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			s.DurationDays = &n
		}
		return s
	}
	if m := weeksRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			days := n * 7
			s.DurationDays = &days
		}
		return s
	}
	if aWeekRe.MatchString(text) {
		days := 7
		s.DurationDays = &days
	}
	return s
}

// ── Price filters ───────────────────────────────────────────────────────────

var (
	maxPriceRe = regexp.MustCompile(`(?i)\b(?:under|below|less than|max(?:imum)?(?: of)?|budget of|up to)\s*[$€£₹]?\s*(\d+(?:,\d{3})*(?:\.\d+)?)\b`)
	nonStopRe  = regexp.MustCompile(`(?i)\b(?:non[-\s]?stop|direct(?:\s+flights?)?)\b`)
	maxStopsRe = regexp.MustCompile(`(?i)\b(?:at most|max(?:imum)?)\s+(\d)\s+stops?\b`)
)

// ExtractPriceFilters picks up price caps and stop limits.
func ExtractPriceFilters(text string) SlotSet {
	var s SlotSet
	if m := maxPriceRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil && v > 0 {
			s.Price.MaxPrice = &v
		}
	}
	if m := maxStopsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			s.Price.MaxStops = &n
		}
	} else if nonStopRe.MatchString(text) {
		zero := 0
		s.Price.MaxStops = &zero
	}
	return s
}
