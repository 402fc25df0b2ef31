package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// SignupRepository implements port.SignupRepository
type SignupRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewSignupRepository creates a new PostgreSQL signup request repository
func NewSignupRepository(db DatabaseIface, logger *slog.Logger) *SignupRepository {
	return &SignupRepository{
		db:     db,
		logger: logger.With("component", "signup_repository"),
	}
}

// CreateSignupRequest stores a pending registration request.
func (r *SignupRepository) CreateSignupRequest(ctx context.Context, record *domain.SignupRecord) error {
	query := `
		INSERT INTO signup_requests (
			id, name, identification, username, email, password_hash, code, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.Name,
		record.Identification,
		record.Username,
		record.Email,
		record.PasswordHash,
		record.Code,
		record.CreatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to store signup request", "request_id", record.ID, "error", err)
		return fmt.Errorf("failed to store signup request: %w", err)
	}

	r.logger.InfoContext(ctx, "signup request stored", "request_id", record.ID)
	return nil
}
