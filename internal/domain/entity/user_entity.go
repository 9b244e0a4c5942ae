package entity

import (
	"time"
)

// User is the aggregate root for the user domain
// Passwords are stored as bcrypt hashes in Password field
// and are never serialized back to clients.
type User struct {
	ID        string
	Role      Role
	Name      string
	Email     string
	Phone     string
	Document  string
	Address   string
	City      string
	State     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contact is the subset of a user a donor receives after accepting a
// request, so the two parties can arrange the handover.
type Contact struct {
	Name  string
	Phone string
	Email string
}

func (u *User) Contact() Contact {
	return Contact{Name: u.Name, Phone: u.Phone, Email: u.Email}
}
