package user

import "context"

// Directory defines the interface for user directory operations.
type Directory interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*User, error)
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
	GetUser(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, id string) error
}
