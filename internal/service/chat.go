// README: ChatService; orchestrates one conversational turn end to end.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atlas/internal/ai"
	"atlas/internal/logx"
	"atlas/internal/modules/conversation"
	"atlas/internal/modules/dialogue"
	"atlas/internal/modules/profile"
	"atlas/internal/modules/search"
)

const defaultHistoryWindow = 8

// ChatRequest is one user message in a session.
type ChatRequest struct {
	SessionID string
	UserID    string
	Message   string
	// Currency, when set, overrides the profile and geocode currency for any
	// search this turn triggers.
	Currency string
}

// ChatResponse is the assistant's turn.
type ChatResponse struct {
	Reply   string
	Intent  string
	Outcome string
	// Results is set when this turn invoked a search provider.
	Results *search.Results
	// Degraded marks replies produced while a collaborator was unavailable.
	Degraded bool
}

// ChatService runs the per-turn pipeline: resolve the dialogue state, invoke
// at most one search provider, phrase the reply, persist the turn, and fold
// anything durable back into the profile.
type ChatService struct {
	resolver *dialogue.Resolver
	ai       ai.Provider
	flights  search.Provider
	hotels   search.Provider
	profiles *profile.Service
	turns    conversation.Log
	window   int
	clock    func() time.Time
}

type ChatOpts struct {
	// HistoryWindow bounds how many stored turns feed resolution. Zero means
	// the default.
	HistoryWindow int
	// Clock stamps appended turns. Nil means time.Now.
	Clock func() time.Time
}

func NewChatService(resolver *dialogue.Resolver, provider ai.Provider, flights, hotels search.Provider, profiles *profile.Service, turns conversation.Log, opts ChatOpts) *ChatService {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = defaultHistoryWindow
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &ChatService{
		resolver: resolver,
		ai:       provider,
		flights:  flights,
		hotels:   hotels,
		profiles: profiles,
		turns:    turns,
		window:   opts.HistoryWindow,
		clock:    opts.Clock,
	}
}

// Chat processes one message and returns the assistant's reply. Collaborator
// outages degrade the reply instead of failing the turn; only invalid input
// or a persistence failure on the turn log is returned as an error.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.SessionID == "" || req.Message == "" {
		return nil, conversation.ErrBadRequest
	}

	prefs, err := s.profiles.Get(ctx, req.UserID)
	if err != nil {
		logx.Warn().Err(err).Str("user", req.UserID).Msg("profile load failed, continuing without preferences")
		prefs = nil
	}

	history, err := s.turns.Recent(ctx, req.SessionID, s.window)
	if err != nil {
		logx.Warn().Err(err).Str("session", req.SessionID).Msg("history load failed, continuing with empty window")
		history = nil
	}

	res, err := s.resolver.Resolve(ctx, dialogue.Request{
		SessionID:        req.SessionID,
		Utterance:        req.Message,
		CurrencyOverride: req.Currency,
	}, history, prefs)
	if err != nil {
		return s.finishDegraded(ctx, req, history, err)
	}

	out := &ChatResponse{
		Intent:  string(res.Intent.Type),
		Outcome: string(res.Outcome),
	}

	switch res.Outcome {
	case dialogue.OutcomeReady:
		if res.SearchRequest != nil {
			results, searchErr := s.runSearch(ctx, res)
			if searchErr != nil {
				return s.finishDegraded(ctx, req, history, searchErr)
			}
			out.Results = results
			out.Reply, out.Degraded = s.phraseResults(ctx, res.SearchRequest, results)
		} else {
			out.Reply, out.Degraded = s.generate(ctx,
				buildItineraryPrompt(req.Message, res.Slots, history), degradedChatReply)
		}
	case dialogue.OutcomeMissingSlot, dialogue.OutcomeNeedsDisambiguation:
		out.Reply, out.Degraded = s.phraseClarification(ctx, req.Message, history, res.Clarification)
	default:
		out.Reply, out.Degraded = s.generate(ctx,
			buildConversationalPrompt(req.Message, history), degradedChatReply)
	}

	if err := s.appendTurn(ctx, req, out.Reply); err != nil {
		return nil, err
	}
	s.rememberPreferences(ctx, req.UserID, prefs, res)
	return out, nil
}

// runSearch invokes the provider for the resolved request, exactly once.
func (s *ChatService) runSearch(ctx context.Context, res *dialogue.Resolution) (*search.Results, error) {
	var provider search.Provider
	switch res.SearchRequest.Kind {
	case search.KindFlight:
		provider = s.flights
	case search.KindHotel:
		provider = s.hotels
	}
	if provider == nil {
		return nil, fmt.Errorf("no provider for %s searches", res.SearchRequest.Kind)
	}
	results, err := provider.Search(ctx, *res.SearchRequest)
	if err != nil {
		return nil, &dialogue.CollaboratorError{
			Op:     "search",
			Intent: res.Intent.Type,
			Slots:  res.Slots,
			Err:    err,
		}
	}
	return results, nil
}

// phraseResults asks the model to present results; on failure the raw listing
// is returned with a degraded preamble.
func (s *ChatService) phraseResults(ctx context.Context, req *search.Request, results *search.Results) (string, bool) {
	reply, err := s.ai.Generate(ctx, buildResultsPrompt(req, results))
	if err != nil {
		logx.Warn().Err(err).Msg("result phrasing failed, returning raw listing")
		return degradedSearchReply + formatResults(results), true
	}
	return reply, false
}

// phraseClarification asks the model to word the question. The canonical
// question text is appended verbatim either way so the next turn's follow-up
// classification keeps working.
func (s *ChatService) phraseClarification(ctx context.Context, utterance string, history []conversation.Turn, c *dialogue.Clarification) (string, bool) {
	question := canonicalQuestion(c)
	reply, err := s.ai.Generate(ctx, buildClarifyPrompt(utterance, history, question))
	if err != nil {
		logx.Warn().Err(err).Msg("clarification phrasing failed, using the bare question")
		return question, true
	}
	return reply, false
}

func (s *ChatService) generate(ctx context.Context, prompt, fallback string) (string, bool) {
	reply, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		logx.Warn().Err(err).Msg("text generation failed")
		return fallback, true
	}
	return reply, false
}

// finishDegraded turns a mid-pipeline collaborator failure into a degraded
// reply. The turn is still recorded so the session's slot history survives.
func (s *ChatService) finishDegraded(ctx context.Context, req ChatRequest, history []conversation.Turn, cause error) (*ChatResponse, error) {
	var ce *dialogue.CollaboratorError
	if !errors.As(cause, &ce) {
		return nil, cause
	}
	logx.Error().Err(ce).Str("op", ce.Op).Str("intent", string(ce.Intent)).Msg("collaborator failed mid-turn")

	out := &ChatResponse{
		Reply:    degradedOutageReply,
		Intent:   string(ce.Intent),
		Outcome:  string(dialogue.OutcomeReady),
		Degraded: true,
	}
	if err := s.appendTurn(ctx, req, out.Reply); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ChatService) appendTurn(ctx context.Context, req ChatRequest, reply string) error {
	return s.turns.Append(ctx, req.SessionID, conversation.Turn{
		UserText:      req.Message,
		AssistantText: reply,
		Timestamp:     s.clock(),
	})
}

// rememberPreferences folds durable facts from a resolved turn back into the
// profile. Only additive: a stated origin becomes the home city when none is
// stored yet. Failures are logged and swallowed; preferences are best-effort.
func (s *ChatService) rememberPreferences(ctx context.Context, userID string, prefs *profile.Profile, res *dialogue.Resolution) {
	if userID == "" || res.Slots.Origin == nil {
		return
	}
	if prefs != nil && prefs.HomeCity != "" {
		return
	}
	switch res.Slots.Sources[dialogue.FieldOrigin] {
	case dialogue.SourceUtterance, dialogue.SourceFollowUp:
	default:
		return
	}
	if _, err := s.profiles.Update(ctx, userID, profile.Profile{HomeCity: *res.Slots.Origin}); err != nil {
		logx.Warn().Err(err).Str("user", userID).Msg("profile update failed")
	}
}
