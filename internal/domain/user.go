package domain

import "time"

// UserRole separates regular requesters from administrators.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// ValidRole reports whether the role is one of the declared values.
func ValidRole(role UserRole) bool {
	return role == RoleUser || role == RoleAdmin
}

// User is the single account model; admins are users with an elevated role.
type User struct {
	ID                   string
	Username             string
	Email                string
	PasswordHash         string
	Role                 UserRole
	IsActive             bool
	ProfileImage         *string
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserRef is the expanded form of a user reference embedded in responses.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Ref returns the public reference for the user.
func (u *User) Ref() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Username: u.Username, Email: u.Email}
}
