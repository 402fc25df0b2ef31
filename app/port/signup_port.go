package port

//go:generate mockgen -source=signup_port.go -destination=../mocks/mock_signup_port.go

import (
	"context"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// SignupUsecase accepts public account requests.
type SignupUsecase interface {
	SubmitSignup(ctx context.Context, req *domain.SignupRequest, remoteIP string) error
}

// SignupRepository persists account requests for operator review.
type SignupRepository interface {
	CreateSignupRequest(ctx context.Context, record *domain.SignupRecord) error
}

// Mailer delivers outbound email.
type Mailer interface {
	Send(ctx context.Context, msg *domain.EmailMessage) error
}

// CaptchaVerifier checks a CAPTCHA response token. It returns
// domain.ErrCaptchaRejected for a bad token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}
