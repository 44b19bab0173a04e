package models

import "time"

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // stored as plaintext, never exposed
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile returns the public view of the account
func (u *User) Profile() UserProfile {
	return UserProfile{Username: u.Username, Name: u.Name, Role: u.Role}
}

// UserProfile is what a successful login reveals about an account
type UserProfile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the login response: the profile plus a bearer token
type AuthResponse struct {
	UserProfile
	Token string `json:"token"`
}

// ChangePasswordRequest represents the request body for a password change
type ChangePasswordRequest struct {
	Username        string `json:"username" validate:"required"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// DefaultAccounts are created by Seed when missing
var DefaultAccounts = []User{
	{Username: "admin", Password: "admin123", Name: "Administrator", Role: RoleAdmin},
	{Username: "user", Password: "user123", Name: "Normal User", Role: RoleUser},
}
