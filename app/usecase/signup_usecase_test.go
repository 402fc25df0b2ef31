package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	mock_port "github.com/Jcepedarey/emmita-backend/app/mocks"
)

func validSignup() *domain.SignupRequest {
	return &domain.SignupRequest{
		Name:           "Carlos Ruiz",
		Identification: "1020304050",
		Username:       "cruiz",
		Email:          "Carlos@Example.com",
		Password:       "hunter22",
		Confirm:        "hunter22",
		CaptchaToken:   "captcha-token",
	}
}

func TestSignupUsecase_SubmitSignup(t *testing.T) {
	t.Run("stores hashed request and notifies operator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_port.NewMockSignupRepository(ctrl)
		mailer := mock_port.NewMockMailer(ctrl)
		captcha := mock_port.NewMockCaptchaVerifier(ctrl)

		var stored *domain.SignupRecord
		captcha.EXPECT().Verify(gomock.Any(), "captcha-token", "203.0.113.9").Return(nil)
		repo.EXPECT().CreateSignupRequest(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *domain.SignupRecord) error {
				stored = r
				return nil
			})
		mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg *domain.EmailMessage) error {
				assert.Equal(t, []string{"ops@example.com"}, msg.To)
				assert.Contains(t, msg.Body, stored.Code)
				assert.Contains(t, msg.Body, "Carlos Ruiz")
				assert.NotContains(t, msg.Body, "hunter22")
				return nil
			})

		uc := NewSignupUsecase(repo, mailer, captcha, []string{"ops@example.com"}, nil)
		err := uc.SubmitSignup(context.Background(), validSignup(), "203.0.113.9")
		require.NoError(t, err)

		require.NotNil(t, stored)
		assert.Equal(t, "carlos@example.com", stored.Email)
		assert.Regexp(t, regexp.MustCompile(`^[1-9][0-9]{5}$`), stored.Code)
		assert.NotEqual(t, "hunter22", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")))
	})

	t.Run("password mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := NewSignupUsecase(mock_port.NewMockSignupRepository(ctrl), mock_port.NewMockMailer(ctrl), nil, nil, nil)

		req := validSignup()
		req.Confirm = "different"
		err := uc.SubmitSignup(context.Background(), req, "")
		assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
	})

	t.Run("multibyte password over the bcrypt byte limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		captcha := mock_port.NewMockCaptchaVerifier(ctrl)
		uc := NewSignupUsecase(mock_port.NewMockSignupRepository(ctrl), mock_port.NewMockMailer(ctrl), captcha, nil, nil)

		req := validSignup()
		req.Password = strings.Repeat("é", 40)
		req.Confirm = req.Password
		err := uc.SubmitSignup(context.Background(), req, "")
		assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
	})

	t.Run("password of exactly 72 bytes is hashed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_port.NewMockSignupRepository(ctrl)
		mailer := mock_port.NewMockMailer(ctrl)
		repo.EXPECT().CreateSignupRequest(gomock.Any(), gomock.Any()).Return(nil)
		mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

		req := validSignup()
		req.Password = strings.Repeat("é", 36)
		req.Confirm = req.Password
		uc := NewSignupUsecase(repo, mailer, nil, nil, nil)
		assert.NoError(t, uc.SubmitSignup(context.Background(), req, ""))
	})

	t.Run("captcha rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		captcha := mock_port.NewMockCaptchaVerifier(ctrl)
		captcha.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ErrCaptchaRejected)

		uc := NewSignupUsecase(mock_port.NewMockSignupRepository(ctrl), mock_port.NewMockMailer(ctrl), captcha, nil, nil)
		err := uc.SubmitSignup(context.Background(), validSignup(), "")
		assert.ErrorIs(t, err, domain.ErrCaptchaRejected)
	})

	t.Run("captcha skipped when not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_port.NewMockSignupRepository(ctrl)
		mailer := mock_port.NewMockMailer(ctrl)
		repo.EXPECT().CreateSignupRequest(gomock.Any(), gomock.Any()).Return(nil)
		mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

		uc := NewSignupUsecase(repo, mailer, nil, []string{"ops@example.com"}, nil)
		assert.NoError(t, uc.SubmitSignup(context.Background(), validSignup(), ""))
	})

	t.Run("repository failure stops before mailing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_port.NewMockSignupRepository(ctrl)
		repo.EXPECT().CreateSignupRequest(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

		uc := NewSignupUsecase(repo, mock_port.NewMockMailer(ctrl), nil, nil, nil)
		err := uc.SubmitSignup(context.Background(), validSignup(), "")
		assert.ErrorContains(t, err, "store signup request")
	})
}

func TestGenerateSignupCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateSignupCode()
		require.NoError(t, err)
		assert.Len(t, code, domain.SignupCodeDigits)
		assert.NotEqual(t, byte('0'), code[0])
	}
}
