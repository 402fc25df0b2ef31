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

// EmployeeHandler lets tenant admins provision members.
type EmployeeHandler struct {
	employeeUsecase port.EmployeeUsecase
	logger          *slog.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeUsecase port.EmployeeUsecase, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeUsecase: employeeUsecase,
		logger:          logger,
	}
}

// CreateEmployeeResponse is returned on 201.
type CreateEmployeeResponse struct {
	OK      bool                    `json:"ok"`
	Message string                  `json:"message"`
	User    *domain.CreatedEmployee `json:"user"`
}

// CreateEmployee handles POST /api/empleados/crear.
func (h *EmployeeHandler) CreateEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	admin, ok := domain.AdminContextFrom(ctx)
	if !ok {
		return apperrors.FromRejection(domain.Reject(domain.RejectUnauthenticated, nil))
	}

	var req domain.CreateEmployeeRequest
	err := bindAndValidate(c, &req, func() {
		req.Name = strings.TrimSpace(req.Name)
		req.Email = domain.NormalizeEmail(req.Email)
	})
	if err != nil {
		return err
	}

	created, err := h.employeeUsecase.CreateEmployee(ctx, admin, &req)
	if err != nil {
		return h.mapError(err)
	}

	return c.JSON(http.StatusCreated, CreateEmployeeResponse{
		OK:      true,
		Message: fmt.Sprintf("User %s created successfully", created.Name),
		User:    created,
	})
}

func (h *EmployeeHandler) mapError(err error) error {
	var limitErr *domain.UserLimitError
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &limitErr):
		return apperrors.Wrap(apperrors.ErrCodeUserLimitReached,
			fmt.Sprintf("User limit reached (%d/%d). Upgrade your plan to add more users.", limitErr.Current, limitErr.Max),
			err)
	case errors.As(err, &validationErr):
		return validationFailed(err)
	case errors.Is(err, domain.ErrEmailInUse):
		return apperrors.Wrap(apperrors.ErrCodeConflict, "an account with that email already exists", err)
	case errors.Is(err, domain.ErrProfileProvisioning):
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "could not create the user's profile", err)
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "could not create the user", err)
	}
}
