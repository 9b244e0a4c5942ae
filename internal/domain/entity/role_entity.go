package entity

// Role is the closed set of roles a user can register with.
// It is persisted in the "cargo" column and is never writable
// through profile self-edit.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleRecipient Role = "recipient"
	RoleOther     Role = "other"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleRecipient, RoleOther:
		return true
	}
	return false
}
