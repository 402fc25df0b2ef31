package port

//go:generate mockgen -source=authorization_port.go -destination=../mocks/mock_authorization_port.go

import (
	"context"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// AuthorizationUsecase runs the request authorization pipelines. Both methods
// take the raw Authorization header and fail with a *domain.Rejection.
type AuthorizationUsecase interface {
	Authorize(ctx context.Context, authorizationHeader string) (*domain.RequestContext, error)
	AuthorizeAdmin(ctx context.Context, authorizationHeader string) (*domain.AdminContext, error)
}
