package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "user-account-service/pkg/errors"

	"user-account-service/internal/domain/user"
)

// DefaultUsersTable is used when no table name is configured.
const DefaultUsersTable = "users"

// UserRepoPG implements the credential store contract using GORM.
// The database must be opened with TranslateError enabled so unique
// constraint violations surface as gorm.ErrDuplicatedKey.
type UserRepoPG struct {
	db    *gorm.DB
	table string
	log   *zap.Logger
}

// NewUserRepoPG creates a new instance of UserRepoPG bound to the given table.
func NewUserRepoPG(db *gorm.DB, table string, log *zap.Logger) *UserRepoPG {
	if table == "" {
		table = DefaultUsersTable
	}
	return &UserRepoPG{db: db, table: table, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID           string `gorm:"primaryKey;size:36"` // Store-assigned UUID
	Email        string `gorm:"not null;unique"`    // Unique login identifier
	PasswordHash string `gorm:"not null"`           // Hashed credential, never plaintext
}

// Migrate creates or updates the users table.
func (r *UserRepoPG) Migrate() error {
	return r.db.Table(r.table).AutoMigrate(&UserSchema{})
}

// Create inserts a new user and returns the store-assigned identifier.
// A unique constraint violation on email surfaces as DuplicateEmailError;
// exactly one of two concurrent creates for the same email can succeed.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (string, error) {
	if u == nil {
		return "", errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:           uuid.NewString(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}

	if err := r.db.WithContext(ctx).Table(r.table).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate email on insert", zap.String("email", u.Email))
			return "", apperrors.NewDuplicateEmailError(u.Email)
		}
		r.log.Error("failed to insert user", zap.Error(err), zap.String("email", u.Email))
		return "", apperrors.NewStoreError("insert", err)
	}

	r.log.Info("user created in store", zap.String("id", model.ID))
	return model.ID, nil
}

// GetAll returns every user record in store order.
func (r *UserRepoPG) GetAll(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Table(r.table).Find(&models).Error; err != nil {
		r.log.Error("failed to list users", zap.Error(err))
		return nil, apperrors.NewStoreError("find", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = user.User{
			ID:           model.ID,
			Email:        model.Email,
			PasswordHash: model.PasswordHash,
		}
	}
	return users, nil
}

// GetByID retrieves a user by identifier, returning (nil, nil) when absent.
func (r *UserRepoPG) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.String("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user", zap.Error(err), zap.String("id", id))
		return nil, apperrors.NewStoreError("find", err)
	}

	return &user.User{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
	}, nil
}

// GetByEmail retrieves a user by email, returning (nil, nil) when absent.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Table(r.table).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, apperrors.NewStoreError("find", err)
	}

	return &user.User{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
	}, nil
}

// Replace overwrites the record identified by u.ID with the given fields.
// Full replace semantics: every column is written, including empty ones.
func (r *UserRepoPG) Replace(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}
	if u.ID == "" {
		return fmt.Errorf("user id is required for replace")
	}

	model := UserSchema{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}

	result := r.db.WithContext(ctx).Table(r.table).Where("id = ?", u.ID).Select("*").Updates(&model)
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate email on replace", zap.String("email", u.Email))
			return apperrors.NewDuplicateEmailError(u.Email)
		}
		r.log.Error("failed to replace user", zap.Error(err), zap.String("id", u.ID))
		return apperrors.NewStoreError("replace", err)
	}

	r.log.Info("user replaced in store", zap.String("id", u.ID))
	return nil
}

// Delete removes a user by identifier.
func (r *UserRepoPG) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Delete(&UserSchema{}).Error; err != nil {
		r.log.Error("failed to delete user", zap.Error(err), zap.String("id", id))
		return apperrors.NewStoreError("delete", err)
	}

	r.log.Info("user deleted from store", zap.String("id", id))
	return nil
}
