package port

//go:generate mockgen -source=employee_port.go -destination=../mocks/mock_employee_port.go

import (
	"context"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// EmployeeUsecase provisions tenant members on behalf of an admin.
type EmployeeUsecase interface {
	CreateEmployee(ctx context.Context, admin *domain.AdminContext, req *domain.CreateEmployeeRequest) (*domain.CreatedEmployee, error)
}
