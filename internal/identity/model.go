package identity

import (
	"fmt"
	"time"
)

// Role is a closed set. Handlers gate routes by switching on it
// exhaustively, so adding a role is a compile-visible change rather than a
// new ad-hoc string comparison.
type Role string

const (
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
	RoleAdmin        Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleDoctor, RoleNurse, RoleReceptionist, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Dashboard returns the landing view for a role after login.
func (r Role) Dashboard() string {
	switch r {
	case RoleDoctor:
		return "doctor_dashboard"
	case RoleNurse:
		return "nurse_dashboard"
	case RoleReceptionist:
		return "receptionist_dashboard"
	case RoleAdmin:
		return "admin_dashboard"
	default:
		return "home"
	}
}

type User struct {
	ID             int64
	Username       string
	FirstName      string
	LastName       string
	Email          string
	IDNumber       string
	Role           Role
	PasswordHash   string
	ProfilePicture *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}
