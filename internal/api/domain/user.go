package domain

import "time"

// User is a stored user record. PasswordHash is empty for users created
// through the CRUD surface who never had a password attached; those accounts
// cannot log in until one is set.
type User struct {
	ID           int64
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string // bcrypt encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
