package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "user-account-service/pkg/errors"
	"user-account-service/pkg/security"

	domain "user-account-service/internal/domain/user"

	"github.com/go-playground/validator/v10"
)

// Repository defines the credential store contract the directory depends on.
// Lookups return (nil, nil) when no record matches; Create assigns and returns
// the record identifier; Replace overwrites every field of an existing record.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (string, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Replace(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

// Usecase implements the user directory: CRUD orchestration over the
// credential store, with password hashing on the write paths.
type Usecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new directory usecase over the given repository.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a field-level error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// validateID rejects identifiers that do not conform to the store's UUID
// format before any store round-trip.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewInvalidIDError(id)
	}
	return nil
}

// CreateUser hashes the supplied plaintext and inserts a new record.
// A uniqueness violation on email surfaces as DuplicateEmailError.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	uc.log.Info("creating user", zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("create user validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		uc.log.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	id, err := uc.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		uc.log.Warn("failed to create user", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	return &User{ID: id, Email: in.Email, PasswordHash: hash}, nil
}

// ListUsers returns every record in store order. Callers must not assume the
// order is stable across calls.
func (uc *Usecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	domainUsers, err := uc.repo.GetAll(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			ID:           du.ID,
			Email:        du.Email,
			PasswordHash: du.PasswordHash,
		}
	}
	return &ListUsersResponse{Users: users}, nil
}

// GetUser retrieves a single record by identifier.
func (uc *Usecase) GetUser(ctx context.Context, id string) (*User, error) {
	if err := validateID(id); err != nil {
		uc.log.Warn("get user rejected", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.log.Error("failed to get user", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user", "")
	}

	return &User{ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash}, nil
}

// UpdateUser replaces an existing record with the supplied payload.
// The stored identifier is preserved regardless of the payload. Replacement is
// full: a payload without a password clears the stored hash; a supplied
// password is hashed before persisting.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	uc.log.Info("updating user", zap.String("id", in.ID), zap.String("email", in.Email))

	if err := validateID(in.ID); err != nil {
		uc.log.Warn("update user rejected", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}
	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("update user validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to fetch user for update", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError("user", "")
	}

	var hash string
	if in.Password != "" {
		hash, err = security.HashPassword(in.Password)
		if err != nil {
			uc.log.Error("failed to hash password", zap.Error(err))
			return nil, apperrors.NewInternalError("failed to hash password", err)
		}
	}

	replacement := &domain.User{
		ID:           existing.ID, // identifier cannot be changed via update
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := uc.repo.Replace(ctx, replacement); err != nil {
		uc.log.Warn("failed to replace user", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &User{ID: replacement.ID, Email: replacement.Email, PasswordHash: replacement.PasswordHash}, nil
}

// DeleteUser removes a record, failing with NotFound when it does not exist.
func (uc *Usecase) DeleteUser(ctx context.Context, id string) error {
	uc.log.Info("deleting user", zap.String("id", id))

	if err := validateID(id); err != nil {
		uc.log.Warn("delete user rejected", zap.String("id", id), zap.Error(err))
		return err
	}

	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.log.Error("failed to fetch user for delete", zap.String("id", id), zap.Error(err))
		return err
	}
	if existing == nil {
		return apperrors.NewNotFoundError("user", "")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.log.Error("failed to delete user", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
