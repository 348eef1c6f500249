package model

import "time"

const (
	RoleUser  = "u"
	RoleAdmin = "a"
)

// User represents a row in tb_users
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Do not expose password hash in JSON responses
	NameFull     string     `json:"name_full"`
	Role         string     `json:"role"` // "u" or "a"
	DateCreation time.Time  `json:"date_creation"`
	Email        string     `json:"email"`
	LastCode     *string    `json:"-"` // reserved for the account-recovery flow
	CodeExp      *time.Time `json:"-"`
}

// UserData is the identifying subset returned on a successful login.
// It deliberately never carries the password hash.
type UserData struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	NameFull string `json:"name_full"`
	Role     string `json:"role"`
}

// ProfileData is the payload of get_profile.
type ProfileData struct {
	Email    string `json:"email"`
	NameFull string `json:"name_full"`
}

// CreateAccountRequest is the body of POST /create_account
type CreateAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileRequest is the body of POST /get_profile
type ProfileRequest struct {
	Username string `json:"username" binding:"required"`
}

// UpdateProfileRequest is the body of POST /update_profile.
// Pointers distinguish "field absent" from "field set to empty" so the
// update can stay partial; any other field in the body is ignored.
type UpdateProfileRequest struct {
	Username    string  `json:"username" binding:"required"`
	NameFull    *string `json:"name_full,omitempty"`
	Email       *string `json:"email,omitempty"`
	NewPassword *string `json:"new_password,omitempty"`
}

// ProfileChanges carries the resolved column updates down to the repository.
type ProfileChanges struct {
	NameFull     *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether the update would touch no columns.
func (c ProfileChanges) Empty() bool {
	return c.NameFull == nil && c.Email == nil && c.PasswordHash == nil
}
