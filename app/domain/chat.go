package domain

// Chat request limits.
const (
	MaxChatMessages      = 20
	MaxChatContentLength = 3000
	ChatMaxTokens        = 1000
	ChatTemperature      = 0.7
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required,max=3000"`
}

// ChatRequest is the client payload for the assistant. Any model the client
// names is ignored.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,max=20,dive"`
}

// CompletionRequest is what is sent upstream.
type CompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// DefaultChatModel is used whenever the configured model is not allowed.
const DefaultChatModel = "gpt-4o"

var allowedChatModels = map[string]bool{
	"gpt-4o":      true,
	"gpt-4o-mini": true,
}

// ResolveChatModel returns model when it is on the allow list and
// DefaultChatModel otherwise.
func ResolveChatModel(model string) string {
	if allowedChatModels[model] {
		return model
	}
	return DefaultChatModel
}
