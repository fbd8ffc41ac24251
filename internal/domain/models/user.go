package models

import "time"

// User is an account keyed by institutional email. Phone stays empty
// until the profile-completion step.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileComplete reports whether the user may create or book rides.
func (u User) ProfileComplete() bool {
	return u.Phone != ""
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}
