package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	apperrors "github.com/Jcepedarey/emmita-backend/app/utils/errors"
	"github.com/Jcepedarey/emmita-backend/app/utils/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(testLogger())
	return e
}

// serve runs h behind the error handler with ctx attached to the request.
func serve(t *testing.T, ctx context.Context, method, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := newTestEcho()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/", reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		method         string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "app error keeps its status and message",
			err:            apperrors.New(apperrors.ErrCodeConflict, "already exists"),
			expectedStatus: http.StatusConflict,
			expectedError:  "already exists",
		},
		{
			name:           "rejection mapped by the middleware",
			err:            apperrors.FromRejection(domain.Reject(domain.RejectTrialExpired, nil)),
			expectedStatus: http.StatusForbidden,
			expectedError:  "your free trial has ended. Choose a plan to keep using the platform.",
		},
		{
			name:           "unknown route",
			err:            echo.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "route not found",
		},
		{
			name:           "body too large",
			err:            echo.ErrStatusRequestEntityTooLarge,
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedError:  "request body too large",
		},
		{
			name:           "method not allowed uses echo message",
			err:            echo.ErrMethodNotAllowed,
			expectedStatus: http.StatusMethodNotAllowed,
			expectedError:  "Method Not Allowed",
		},
		{
			name:           "echo 5xx is masked",
			err:            echo.NewHTTPError(http.StatusBadGateway, "upstream said secret things"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal server error",
		},
		{
			name:           "plain error is masked",
			err:            errors.New("pq: connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal server error",
		},
		{
			name:           "internal app error never leaks its cause",
			err:            apperrors.NewInternalError(errors.New("dial tcp 10.0.0.1:5432")),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, context.Background(), http.MethodGet, "", func(echo.Context) error { return tt.err })

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedError, decodeError(t, rec))
			assert.NotContains(t, rec.Body.String(), "10.0.0.1")
		})
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := serve(t, context.Background(), http.MethodHead, "", func(echo.Context) error { return echo.ErrNotFound })

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	rec := serve(t, context.Background(), http.MethodGet, "", func(c echo.Context) error {
		_ = c.String(http.StatusOK, "partial")
		return errors.New("late failure")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestValidationFailed(t *testing.T) {
	v := validator.New()
	err := v.Validate(&domain.CreateEmployeeRequest{Email: "a@b.co", Password: "secret1", Role: "employee"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(validationFailed(err))
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, "nombre is required", appErr.Message)

	appErr, ok = apperrors.AsAppError(validationFailed(domain.NewValidationError("rol", "invalid role")))
	require.True(t, ok)
	assert.Equal(t, "invalid role", appErr.Message)

	appErr, ok = apperrors.AsAppError(validationFailed(errors.New("boom")))
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
}
