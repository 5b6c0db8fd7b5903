// Package api provides a minimal client for OpenAI-compatible chat
// completion endpoints, covering streaming completions and model
// listing.
package api

// Message is a chat message in the request payload.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// choice represents one completion choice in a streamed response.
type choice struct {
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}

// chatResponse represents one SSE data payload from the completions API.
type chatResponse struct {
	Choices []choice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Model describes one model advertised by a provider.
type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Created       int64  `json:"created"`
	Description   string `json:"description"`
	ContextLength *int   `json:"context_length"`
}

// modelsResponse represents the response from the models API.
type modelsResponse struct {
	Data []Model `json:"data"`
}
