package models

import "time"

type UserRole string

const (
	RoleCommon UserRole = "Common"
	RoleRoot   UserRole = "Root"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "Active"
	UserStatusPending UserStatus = "Pending"
	UserStatusBlocked UserStatus = "Blocked"
)

type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Password         string     `json:"-"` // bcrypt hash, never serialized
	Name             string     `json:"name"`
	Role             UserRole   `json:"role"`
	Status           UserStatus `json:"status"`
	IsEmailActivated bool       `json:"isEmailActivated"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type CreateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdateUserRequest is a partial update: nil fields are left untouched.
type UpdateUserRequest struct {
	Name             *string     `json:"name,omitempty"`
	Email            *string     `json:"email,omitempty"`
	Password         *string     `json:"password,omitempty"`
	Role             *UserRole   `json:"role,omitempty"`
	Status           *UserStatus `json:"status,omitempty"`
	IsEmailActivated *bool       `json:"isEmailActivated,omitempty"`
}
