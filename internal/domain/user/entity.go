package user

// User represents an account record in the system.
type User struct {
	ID           string // ID is the store-assigned unique identifier (UUID), immutable after creation
	Email        string // Email is the unique login identifier
	PasswordHash string // PasswordHash is the salted one-way hash of the password, never plaintext
}
