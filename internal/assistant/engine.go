package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"klinik-ai/internal/contextutil"
	"klinik-ai/internal/llm"
	"klinik-ai/internal/session"
	"klinik-ai/internal/temporal"
)

// Options tunes one engine instance.
type Options struct {
	ChatParams     llm.ChatParams
	ScoreThreshold float32
}

// engine is the production Engine: route, retrieve, prompt, call the
// model, parse, persist.
type engine struct {
	retriever Retriever
	router    *Router
	sessions  session.Store
	gateway   LLMGateway
	opts      Options
	now       func() time.Time
}

// NewEngine wires the assistant flow.
func NewEngine(retriever Retriever, router *Router, sessions session.Store, gateway LLMGateway, opts Options) Engine {
	return &engine{
		retriever: retriever,
		router:    router,
		sessions:  sessions,
		gateway:   gateway,
		opts:      opts,
		now:       time.Now,
	}
}

func (e *engine) Ask(ctx context.Context, q Query) (Answer, error) {
	started := e.now()
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(q.Text) == "" {
		return Answer{}, &ValidationError{Field: "query", Message: "query must not be empty"}
	}
	if !q.User.Role.Valid() {
		return Answer{}, &ValidationError{Field: "role", Message: "unknown role"}
	}

	sessionID := q.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// Session state is continuity, not correctness: a store outage
	// degrades to a stateless turn.
	state, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		logger.Warn("session load failed, answering without history", "session_id", sessionID, "error", err)
		state = session.State{}
	}

	searchText := session.RewriteQuery(q.Text, state.LastQuery)
	if searchText != q.Text {
		logger.Debug("follow-up query rewritten", "session_id", sessionID)
	}

	// Temporal vocabulary is read off the raw query; a prepended previous
	// question must not smuggle in its own date words.
	ti := temporal.Extract(q.Text, e.now())

	collections := e.router.Route(searchText)
	logger.Info("query routed",
		"session_id", sessionID,
		"collections", collections,
		"temporal", ti.HasTemporalQuery,
	)

	sources := e.retriever.Retrieve(ctx, collections, searchText, ti, q.User)
	sources = Rerank(sources, ti, e.opts.ScoreThreshold)

	messages := BuildPrompt(q.User, state.Topic, sources, state.History, q.Text)

	raw, err := e.gateway.ChatWithMessages(ctx, messages, e.opts.ChatParams)
	if err != nil {
		return Answer{}, fmt.Errorf("%w: %w", ErrLLMUnavailable, err)
	}

	reply := ParseReply(raw)
	answerText := SanitizeAnswer(reply.Answer)
	cited := FilterCitations(sources, reply.Sources)

	e.persistTurn(ctx, sessionID, q.Text, answerText, reply, state)

	return Answer{
		Answer:             answerText,
		Sources:            cited,
		SessionID:          sessionID,
		ProcessingTimeMs:   e.now().Sub(started).Milliseconds(),
		NeedsMoreInfo:      reply.NeedsMoreInfo,
		FollowUpQuestion:   reply.FollowUpQuestion,
		SuggestedFollowUps: reply.SuggestedFollowUps,
	}, nil
}

// persistTurn writes the session records after a successful answer. The
// topic is replaced only on an explicit change signal or when none is
// retained yet. Write failures are logged, never surfaced.
func (e *engine) persistTurn(ctx context.Context, sessionID, question, answer string, reply Reply, prev session.State) {
	logger := contextutil.LoggerFromContext(ctx)

	err := e.sessions.AppendHistory(ctx, sessionID,
		session.Turn{Role: "user", Content: question},
		session.Turn{Role: "assistant", Content: answer},
	)
	if err != nil {
		logger.Warn("session history write failed", "session_id", sessionID, "error", err)
	}

	if reply.Topic != "" && (reply.IsTopicChanged || prev.Topic == "") {
		if err := e.sessions.SetTopic(ctx, sessionID, reply.Topic); err != nil {
			logger.Warn("session topic write failed", "session_id", sessionID, "error", err)
		}
	}

	if err := e.sessions.SetLastQuery(ctx, sessionID, question); err != nil {
		logger.Warn("session last-query write failed", "session_id", sessionID, "error", err)
	}
}
