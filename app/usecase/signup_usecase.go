package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	"github.com/Jcepedarey/emmita-backend/app/port"
)

// SignupUsecase records public account requests and notifies the operator.
type SignupUsecase struct {
	repo     port.SignupRepository
	mailer   port.Mailer
	captcha  port.CaptchaVerifier
	notifyTo []string
	logger   *slog.Logger
	now      func() time.Time
}

// NewSignupUsecase creates a new SignupUsecase instance. captcha may be nil,
// in which case tokens are not checked.
func NewSignupUsecase(repo port.SignupRepository, mailer port.Mailer, captcha port.CaptchaVerifier, notifyTo []string, logger *slog.Logger) *SignupUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SignupUsecase{
		repo:     repo,
		mailer:   mailer,
		captcha:  captcha,
		notifyTo: notifyTo,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitSignup validates, stores and announces a signup request.
func (uc *SignupUsecase) SubmitSignup(ctx context.Context, req *domain.SignupRequest, remoteIP string) error {
	if req.Password != req.Confirm {
		return domain.ErrPasswordMismatch
	}
	if len(req.Password) > domain.MaxPasswordBytes {
		return domain.ErrPasswordTooLong
	}

	if uc.captcha != nil {
		if err := uc.captcha.Verify(ctx, req.CaptchaToken, remoteIP); err != nil {
			return err
		}
	}

	code, err := generateSignupCode()
	if err != nil {
		return fmt.Errorf("generate signup code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash signup password: %w", err)
	}

	record := &domain.SignupRecord{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(req.Name),
		Identification: strings.TrimSpace(req.Identification),
		Username:       strings.TrimSpace(req.Username),
		Email:          domain.NormalizeEmail(req.Email),
		PasswordHash:   string(hash),
		Code:           code,
		CreatedAt:      uc.now(),
	}

	if err := uc.repo.CreateSignupRequest(ctx, record); err != nil {
		return fmt.Errorf("store signup request: %w", err)
	}

	if err := uc.mailer.Send(ctx, signupNotification(record, uc.notifyTo)); err != nil {
		return fmt.Errorf("send signup notification: %w", err)
	}

	uc.logger.InfoContext(ctx, "signup request stored", "request_id", record.ID)
	return nil
}

func signupNotification(record *domain.SignupRecord, to []string) *domain.EmailMessage {
	var body strings.Builder
	body.WriteString("New account request:\n\n")
	fmt.Fprintf(&body, "Name: %s\n", record.Name)
	fmt.Fprintf(&body, "Username: %s\n", record.Username)
	fmt.Fprintf(&body, "Email: %s\n", record.Email)
	fmt.Fprintf(&body, "Identification: %s\n\n", record.Identification)
	fmt.Fprintf(&body, "Authorization code: %s\n", record.Code)
	body.WriteString("Enter this code in the system to approve the account.\n")

	return &domain.EmailMessage{
		To:      to,
		Subject: "New account request",
		Body:    body.String(),
		ReplyTo: record.Email,
	}
}

// generateSignupCode returns a uniformly random code in [100000, 999999].
func generateSignupCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
