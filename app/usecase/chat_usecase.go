package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	"github.com/Jcepedarey/emmita-backend/app/port"
)

// ChatUsecase forwards conversations to the completion API with server-side
// model and sampling settings.
type ChatUsecase struct {
	client port.CompletionClient
	model  string
	logger *slog.Logger
}

// NewChatUsecase creates a new ChatUsecase instance. model is checked against
// the allow list and replaced by the default when not allowed.
func NewChatUsecase(client port.CompletionClient, model string, logger *slog.Logger) *ChatUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatUsecase{
		client: client,
		model:  domain.ResolveChatModel(model),
		logger: logger,
	}
}

// Chat sends the conversation upstream and returns the upstream body as is.
func (uc *ChatUsecase) Chat(ctx context.Context, rc *domain.RequestContext, req *domain.ChatRequest) (json.RawMessage, error) {
	completion := &domain.CompletionRequest{
		Model:       uc.model,
		Messages:    req.Messages,
		MaxTokens:   domain.ChatMaxTokens,
		Temperature: domain.ChatTemperature,
	}

	body, err := uc.client.CreateChatCompletion(ctx, completion)
	if err != nil {
		uc.logger.ErrorContext(ctx, "chat completion failed",
			"tenant_id", rc.Tenant.ID,
			"identity_id", rc.Identity.ID,
			"error", err)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "chat completion served",
		"tenant_id", rc.Tenant.ID,
		"identity_id", rc.Identity.ID,
		"messages", len(req.Messages))
	return body, nil
}
