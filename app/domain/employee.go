package domain

import "github.com/google/uuid"

// MinEmployeePasswordLength is the shortest password accepted when an admin
// provisions a member.
const MinEmployeePasswordLength = 6

// CreateEmployeeRequest is the payload an admin submits to add a member to
// their tenant.
type CreateEmployeeRequest struct {
	Name     string `json:"nombre" validate:"required,notblank,max=200"`
	Email    string `json:"email" validate:"required,notblank,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Role     string `json:"rol" validate:"required,profile_role"`
}

// CreatedEmployee is returned once the identity and profile both exist.
type CreatedEmployee struct {
	ID       string    `json:"id"`
	TenantID uuid.UUID `json:"-"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
}

// UserLimitError reports a tenant that has no seat left for another member.
type UserLimitError struct {
	Current int
	Max     int
}

func (e *UserLimitError) Error() string {
	return ErrTenantUserLimitReached.Error()
}

func (e *UserLimitError) Unwrap() error {
	return ErrTenantUserLimitReached
}
