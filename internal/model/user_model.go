package model

import "time"

// Roles a user can hold. Anything else is rejected at creation/update.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// ValidRole reports whether role is one of the two accepted values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never JSON-encode
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserView is the externally-safe projection of a User. It is what every
// endpoint returns; the password hash has no representation here at all.
type UserView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// View returns the public projection without timestamps (register/login shape).
func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// FullView returns the public projection including timestamps (profile/admin shape).
func (u *User) FullView() UserView {
	v := u.View()
	v.CreatedAt = &u.CreatedAt
	v.UpdatedAt = &u.UpdatedAt
	return v
}
