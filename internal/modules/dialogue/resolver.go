// README: Dialogue resolver; orchestrates extraction, classification, merge,
// and the readiness gate for one turn.
package dialogue

import (
	"context"
	"sync"
	"time"

	"atlas/internal/modules/conversation"
	"atlas/internal/modules/profile"
	"atlas/internal/modules/search"
)

// CurrencyResolver supplies a booking currency for a destination city when
// neither the request nor the profile names one.
type CurrencyResolver interface {
	CurrencyFor(ctx context.Context, city string) (string, error)
}

const (
	defaultHistoryWindow = 8
	defaultCabinClass    = "economy"
)

// Request is one turn handed to the resolver.
type Request struct {
	SessionID string
	Utterance string
	// CurrencyOverride, when set, outranks the profile currency and the
	// geocode-derived default.
	CurrencyOverride string
}

// Resolution is the outcome of one turn: either a search request ready for a
// provider, a clarification payload, or a conversational hand-off.
type Resolution struct {
	Intent        Intent
	Slots         ResolvedSlotSet
	Outcome       OutcomeKind
	SearchRequest *search.Request
	Clarification *Clarification
}

type Resolver struct {
	classifier      *Classifier
	currency        CurrencyResolver
	defaultCurrency string
	window          int
	clock           func() time.Time

	mu       sync.Mutex
	sessions map[string]*sync.Mutex
}

type ResolverOpts struct {
	// HistoryWindow bounds how many recent turns are replayed. Zero means the
	// default.
	HistoryWindow int
	// Clock supplies the reference time for holiday and bare-month dates.
	// Nil means time.Now.
	Clock func() time.Time
	// DefaultCurrency is the last-resort currency.
	DefaultCurrency string
}

func NewResolver(classifier *Classifier, currency CurrencyResolver, opts ResolverOpts) *Resolver {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = defaultHistoryWindow
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "USD"
	}
	return &Resolver{
		classifier:      classifier,
		currency:        currency,
		defaultCurrency: opts.DefaultCurrency,
		window:          opts.HistoryWindow,
		clock:           opts.Clock,
		sessions:        make(map[string]*sync.Mutex),
	}
}

// Resolve processes one turn. Concurrent calls for the same session are
// serialized; different sessions proceed independently. Apart from the final
// currency lookup this is pure CPU work — no retries, no hidden randomness.
func (r *Resolver) Resolve(ctx context.Context, req Request, history []conversation.Turn, prefs *profile.Profile) (*Resolution, error) {
	lock := r.sessionLock(req.SessionID)
	lock.Lock()
	defer lock.Unlock()

	ref := r.clock()
	if len(history) > r.window {
		history = history[len(history)-r.window:]
	}

	// Extractors over the current utterance.
	extracted := ExtractSlots(req.Utterance, ref)

	// Follow-up recovery against the assistant's previous reply.
	hint := ClassifyFollowUp(lastAssistantText(history))
	recovered := RecoverSlots(hint, req.Utterance, extracted)

	// Replay of the retained window: carried slots plus the mid-flow intent.
	prior, prevIntent := r.replayHistory(history, ref)

	intent := r.classifier.Classify(ctx, req.Utterance, extracted, hint, prevIntent, history, ref)

	slots := Merge(extracted, recovered, prior, prefs)
	alignStayDates(intent.Type, &slots)
	intent.ExtractedInfo = slots.SlotSet

	gate := CheckReady(intent, slots)

	res := &Resolution{
		Intent:        intent,
		Slots:         slots,
		Outcome:       gate.Kind,
		Clarification: gate.Clarification,
	}
	if gate.Kind != OutcomeReady {
		return res, nil
	}

	switch intent.Type {
	case IntentFlightSearch, IntentHotelSearch:
		sr, err := r.buildSearchRequest(ctx, intent, slots, req.CurrencyOverride, prefs)
		if err != nil {
			return nil, err
		}
		res.SearchRequest = sr
	case IntentTripPlanning:
		// Itineraries are produced by the text-generation collaborator, not a
		// slot-driven provider; Ready just means the anchor slots exist.
	}
	return res, nil
}

// replayHistory re-resolves each retained turn with the same pure pipeline,
// folding the results newest-over-oldest. This is how values recovered from
// past follow-ups (a bare "Mumbai" answering an origin question) survive into
// later turns without any hidden per-session state.
func (r *Resolver) replayHistory(history []conversation.Turn, ref time.Time) (SlotSet, IntentType) {
	var acc SlotSet
	prev := IntentGeneral
	replay := &Classifier{} // no category signal: replay stays pure

	lastAssistant := ""
	for _, t := range history {
		ex := ExtractSlots(t.UserText, ref)
		hint := ClassifyFollowUp(lastAssistant)
		rec := RecoverSlots(hint, t.UserText, ex)

		accumulate(&acc, rec)
		accumulate(&acc, ex)

		intent := replay.Classify(context.Background(), t.UserText, ex, hint, prev, nil, ref)
		if intent.Type != IntentGeneral {
			prev = intent.Type
		}
		lastAssistant = t.AssistantText
	}
	return acc, prev
}

// accumulate folds a newer slot set over acc: the most recent turn containing
// a field wins, except that an explicit date is never displaced by a
// heuristic guess from a later turn.
func accumulate(acc *SlotSet, in SlotSet) {
	if in.Origin != nil {
		acc.Origin = in.Origin
	}
	if len(in.Destinations) > 0 {
		acc.Destinations = in.Destinations
	}
	if in.Passengers != nil {
		acc.Passengers = in.Passengers
	}
	if in.DurationDays != nil {
		acc.DurationDays = in.DurationDays
	}
	if in.Price.MaxPrice != nil {
		acc.Price.MaxPrice = in.Price.MaxPrice
	}
	if in.Price.MaxStops != nil {
		acc.Price.MaxStops = in.Price.MaxStops
	}
	accumulateDate(&acc.DepartureDate, in.DepartureDate)
	accumulateDate(&acc.ReturnDate, in.ReturnDate)
	accumulateDate(&acc.CheckIn, in.CheckIn)
	accumulateDate(&acc.CheckOut, in.CheckOut)
}

func accumulateDate(cur **DateValue, in *DateValue) {
	if in == nil {
		return
	}
	if *cur != nil && (*cur).Explicit && !in.Explicit {
		return
	}
	*cur = in
}

// alignStayDates makes hotel and round-trip slots coherent after the merge:
// travel dates double as stay dates for a hotel search, and a known duration
// pins the open end of a range.
func alignStayDates(intentType IntentType, slots *ResolvedSlotSet) {
	if intentType == IntentHotelSearch {
		if slots.CheckIn == nil && slots.DepartureDate != nil {
			slots.CheckIn = slots.DepartureDate
			slots.Sources[FieldCheckIn] = slots.Sources[FieldDepartureDate]
		}
		if slots.CheckOut == nil && slots.ReturnDate != nil {
			slots.CheckOut = slots.ReturnDate
			slots.Sources[FieldCheckOut] = slots.Sources[FieldReturnDate]
		}
		if slots.CheckOut == nil && slots.CheckIn != nil && slots.DurationDays != nil {
			slots.CheckOut = &DateValue{
				Date:     slots.CheckIn.Date.AddDays(*slots.DurationDays),
				Explicit: slots.CheckIn.Explicit,
			}
			slots.Sources[FieldCheckOut] = slots.Sources[FieldCheckIn]
		}
		return
	}
	if slots.ReturnDate == nil && slots.DepartureDate != nil && slots.DurationDays != nil {
		slots.ReturnDate = &DateValue{
			Date:     slots.DepartureDate.Date.AddDays(*slots.DurationDays),
			Explicit: slots.DepartureDate.Explicit,
		}
		slots.Sources[FieldReturnDate] = slots.Sources[FieldDepartureDate]
	}
}

// buildSearchRequest assembles the provider criteria for a ready turn.
// Currency precedence: explicit override, then profile, then the
// geocode-derived default for the destination.
func (r *Resolver) buildSearchRequest(ctx context.Context, intent Intent, slots ResolvedSlotSet, override string, prefs *profile.Profile) (*search.Request, error) {
	dest := slots.PrimaryDestination()

	currency := override
	if currency == "" && prefs != nil {
		currency = prefs.Currency
	}
	if currency == "" && r.currency != nil {
		cur, err := r.currency.CurrencyFor(ctx, dest.Name)
		if err != nil {
			return nil, &CollaboratorError{Op: "currency-lookup", Intent: intent.Type, Slots: slots, Err: err}
		}
		currency = cur
	}
	if currency == "" {
		currency = r.defaultCurrency
	}

	cabin := defaultCabinClass
	if prefs != nil && prefs.PreferredCabinClass != "" {
		cabin = prefs.PreferredCabinClass
	}

	sr := &search.Request{
		Currency: currency,
		Filters:  search.Filters(slots.Price),
	}
	switch intent.Type {
	case IntentFlightSearch:
		sr.Kind = search.KindFlight
		sr.Origin = *slots.Origin
		sr.Destination = dest.Name
		sr.DepartureDate = slots.DepartureDate.Date
		if slots.ReturnDate != nil {
			d := slots.ReturnDate.Date
			sr.ReturnDate = &d
		}
		sr.Passengers = *slots.Passengers
		sr.CabinClass = cabin
	case IntentHotelSearch:
		sr.Kind = search.KindHotel
		sr.Destination = dest.Name
		sr.CheckIn = slots.CheckIn.Date
		sr.CheckOut = slots.CheckOut.Date
		sr.Adults = slots.Passengers.Adults
		sr.Rooms = 1
	}
	return sr, nil
}

func (r *Resolver) sessionLock(sessionID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.sessions[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		r.sessions[sessionID] = lock
	}
	return lock
}

func lastAssistantText(history []conversation.Turn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].AssistantText != "" {
			return history[i].AssistantText
		}
	}
	return ""
}
