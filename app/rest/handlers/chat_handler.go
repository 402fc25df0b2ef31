package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	"github.com/Jcepedarey/emmita-backend/app/port"
	apperrors "github.com/Jcepedarey/emmita-backend/app/utils/errors"
)

const chatUpstreamMessage = "The assistant could not process your request. Try again."

// ChatHandler proxies assistant conversations for authorized tenants.
type ChatHandler struct {
	chatUsecase port.ChatUsecase
	logger      *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatUsecase port.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		logger:      logger,
	}
}

// Chat handles POST /api/ia/chat. The upstream completion is returned as is.
func (h *ChatHandler) Chat(c echo.Context) error {
	rc, ok := domain.RequestContextFrom(c.Request().Context())
	if !ok {
		return apperrors.FromRejection(domain.Reject(domain.RejectUnauthenticated, nil))
	}

	var req domain.ChatRequest
	if err := bindAndValidate(c, &req, nil); err != nil {
		return err
	}

	body, err := h.chatUsecase.Chat(c.Request().Context(), rc, &req)
	if err != nil {
		if errors.Is(err, domain.ErrCompletionFailed) {
			return apperrors.Wrap(apperrors.ErrCodeUpstreamFailed, chatUpstreamMessage, err)
		}
		return apperrors.NewInternalError(err)
	}

	return c.JSONBlob(http.StatusOK, body)
}
