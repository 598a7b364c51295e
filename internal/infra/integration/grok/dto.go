package grok

// Message is one role/content pair in a chat-style request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- PAYLOADS: what the client sends to the completion endpoint ---

// /v1/chat/completions request. The endpoint takes max_output_tokens rather
// than the older max_tokens name.
type chatRequest struct {
	Model           string    `json:"model"`
	Messages        []Message `json:"messages"`
	Temperature     float64   `json:"temperature"`
	MaxOutputTokens int       `json:"max_output_tokens"`
}

// /v1/responses request: single input string instead of a message list.
type responsesRequest struct {
	Model           string  `json:"model"`
	Input           string  `json:"input"`
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"max_output_tokens"`
}

// --- RESPONSES: the two success shapes the endpoint may return ---

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type responsesResponse struct {
	OutputText string `json:"output_text"`
}
