package port

//go:generate mockgen -source=chat_port.go -destination=../mocks/mock_chat_port.go

import (
	"context"
	"encoding/json"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// ChatUsecase proxies assistant conversations for authorized members.
type ChatUsecase interface {
	Chat(ctx context.Context, rc *domain.RequestContext, req *domain.ChatRequest) (json.RawMessage, error)
}

// CompletionClient calls the upstream chat completion API. Non-2xx upstream
// responses are reported as domain.ErrCompletionFailed.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req *domain.CompletionRequest) (json.RawMessage, error)
}
