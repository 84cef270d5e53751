package llm

// Message is a single role-tagged message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model overrides the client's default model when non-empty.
	Model string

	// MaxTokens caps generation; 0 means no limit.
	MaxTokens int

	// Temperature controls randomness. Zero value means the API default.
	Temperature float32
}
