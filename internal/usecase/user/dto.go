package user

// CreateUserRequest represents the request payload for creating a new user.
// The plaintext password is hashed before anything is persisted.
type CreateUserRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

// UpdateUserRequest represents the request payload for replacing a user.
// Replacement is full: the stored record takes exactly these fields, with the
// identifier preserved. An empty password clears the stored hash.
type UpdateUserRequest struct {
	ID       string
	Email    string `validate:"required,email"`
	Password string `validate:"omitempty,min=8,max=72"`
}

// User represents a user DTO returned to the transport layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}
