package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	mock_port "github.com/Jcepedarey/emmita-backend/app/mocks"
)

func TestChatUsecase_Chat(t *testing.T) {
	rc := &domain.RequestContext{
		Identity: &domain.Identity{ID: "user-1"},
		Profile:  &domain.Profile{ID: "user-1", Active: true},
		Tenant:   &domain.Tenant{ID: uuid.New()},
	}
	req := &domain.ChatRequest{Messages: []domain.ChatMessage{{Role: "user", Content: "hola"}}}

	tests := []struct {
		name       string
		model      string
		wantModel  string
		upstream   json.RawMessage
		upstreamEr error
	}{
		{name: "configured model is forced", model: "gpt-4o-mini", wantModel: "gpt-4o-mini", upstream: json.RawMessage(`{"id":"c1"}`)},
		{name: "unknown model falls back to default", model: "gpt-5-ultra", wantModel: domain.DefaultChatModel, upstream: json.RawMessage(`{"id":"c2"}`)},
		{name: "upstream failure", model: "", wantModel: domain.DefaultChatModel, upstreamEr: domain.ErrCompletionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_port.NewMockCompletionClient(ctrl)
			client.EXPECT().CreateChatCompletion(gomock.Any(), &domain.CompletionRequest{
				Model:       tt.wantModel,
				Messages:    req.Messages,
				MaxTokens:   1000,
				Temperature: 0.7,
			}).Return(tt.upstream, tt.upstreamEr)

			uc := NewChatUsecase(client, tt.model, nil)
			body, err := uc.Chat(context.Background(), rc, req)

			if tt.upstreamEr != nil {
				assert.ErrorIs(t, err, tt.upstreamEr)
				assert.Nil(t, body)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, string(tt.upstream), string(body))
		})
	}
}
