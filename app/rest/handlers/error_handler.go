package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	apperrors "github.com/Jcepedarey/emmita-backend/app/utils/errors"
	"github.com/Jcepedarey/emmita-backend/app/utils/validator"
)

// ErrorResponse is the only error body the API renders.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler renders every error as {"error": message}. Causes are
// logged and never written to the client.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := resolveError(err)
		ctx := c.Request().Context()
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx, "request error",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorResponse{Error: message})
		}
		if writeErr != nil {
			logger.ErrorContext(ctx, "failed to write error response", "error", writeErr)
		}
	}
}

func resolveError(err error) (int, string) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.StatusCode, appErr.Message
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.Code == http.StatusNotFound:
			return http.StatusNotFound, apperrors.ErrRouteNotFound.Message
		case httpErr.Code == http.StatusRequestEntityTooLarge:
			return http.StatusRequestEntityTooLarge, "request body too large"
		case httpErr.Code >= http.StatusInternalServerError:
			return http.StatusInternalServerError, apperrors.ErrInternalError.Message
		}
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	return http.StatusInternalServerError, apperrors.ErrInternalError.Message
}

// validationFailed converts validator and domain validation errors into a
// 400 carrying the first failing field's message.
func validationFailed(err error) error {
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		return apperrors.Wrap(apperrors.ErrCodeValidationFailed, vErr.First(), err)
	}
	var dErr *domain.ValidationError
	if errors.As(err, &dErr) {
		return apperrors.Wrap(apperrors.ErrCodeValidationFailed, dErr.Message, err)
	}
	return apperrors.Wrap(apperrors.ErrCodeBadRequest, apperrors.ErrInvalidBody.Message, err)
}

// bindAndValidate decodes the JSON body into req and validates it.
func bindAndValidate(c echo.Context, req interface{}, normalize func()) error {
	if err := c.Bind(req); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code == http.StatusRequestEntityTooLarge {
			return err
		}
		return apperrors.Wrap(apperrors.ErrCodeBadRequest, apperrors.ErrInvalidBody.Message, err)
	}
	if normalize != nil {
		normalize()
	}
	if err := c.Validate(req); err != nil {
		return validationFailed(err)
	}
	return nil
}
