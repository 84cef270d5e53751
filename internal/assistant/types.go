package assistant

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks klinik-ai/internal/assistant Engine
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks klinik-ai/internal/assistant Retriever
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm_gateway.go -package=mocks klinik-ai/internal/assistant LLMGateway

import (
	"context"
	"fmt"
	"time"

	"klinik-ai/internal/llm"
	"klinik-ai/internal/privacy"
	"klinik-ai/internal/temporal"
)

// Query is one natural-language question from an acting user.
type Query struct {
	Text      string
	SessionID string
	User      privacy.UserContext
}

// Source is one role-filtered retrieval result.
type Source struct {
	Collection string         `json:"collection"`
	ID         int64          `json:"id"`
	Snippet    string         `json:"snippet"`
	Score      float32        `json:"score"`
	Metadata   map[string]any `json:"metadata"`
	Date       *time.Time     `json:"date,omitempty"`
}

// Ref returns the source tag used in prompts and citations, e.g.
// "examinations:42".
func (s Source) Ref() string {
	return fmt.Sprintf("%s:%d", s.Collection, s.ID)
}

// Answer is the assembled reply for one query.
type Answer struct {
	Answer             string
	Sources            []Source
	SessionID          string
	ProcessingTimeMs   int64
	NeedsMoreInfo      bool
	FollowUpQuestion   string
	SuggestedFollowUps []string
}

// Engine answers natural-language questions about clinic records.
type Engine interface {
	// Ask runs the full retrieve-and-answer flow for one query.
	Ask(ctx context.Context, q Query) (Answer, error)
}

// Retriever fans a query out across collections and returns role-filtered,
// ownership-filtered, relevance-ranked results.
type Retriever interface {
	Retrieve(ctx context.Context, collections []string, searchText string, ti temporal.Info, user privacy.UserContext) []Source
}

// LLMGateway is the language-model collaborator contract.
type LLMGateway interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}
