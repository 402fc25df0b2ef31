package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	"github.com/Jcepedarey/emmita-backend/app/port"
	apperrors "github.com/Jcepedarey/emmita-backend/app/utils/errors"
)

// SignupHandler accepts public registration requests.
type SignupHandler struct {
	signupUsecase port.SignupUsecase
	logger        *slog.Logger
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(signupUsecase port.SignupUsecase, logger *slog.Logger) *SignupHandler {
	return &SignupHandler{
		signupUsecase: signupUsecase,
		logger:        logger,
	}
}

// SignupResponse confirms a stored request.
type SignupResponse struct {
	Message string `json:"message"`
}

// Submit handles POST /api/registro/solicitar.
func (h *SignupHandler) Submit(c echo.Context) error {
	var req domain.SignupRequest
	err := bindAndValidate(c, &req, func() {
		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.TrimSpace(req.Email)
	})
	if err != nil {
		return err
	}

	if err := h.signupUsecase.SubmitSignup(c.Request().Context(), &req, c.RealIP()); err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordMismatch):
			return apperrors.Wrap(apperrors.ErrCodeValidationFailed, "passwords do not match", err)
		case errors.Is(err, domain.ErrPasswordTooLong):
			return apperrors.Wrap(apperrors.ErrCodeValidationFailed,
				fmt.Sprintf("password must be at most %d bytes long", domain.MaxPasswordBytes), err)
		case errors.Is(err, domain.ErrCaptchaRejected):
			return apperrors.Wrap(apperrors.ErrCodeCaptchaFailed, "captcha verification failed", err)
		default:
			return apperrors.Wrap(apperrors.ErrCodeInternalError, "could not process the request", err)
		}
	}

	return c.JSON(http.StatusOK, SignupResponse{
		Message: "Request sent successfully. Wait for authorization by email.",
	})
}
