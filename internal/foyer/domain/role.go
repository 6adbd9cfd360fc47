package domain

// Role is the account role assigned to an invited user on signup.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole maps a raw string onto the role enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), true
	default:
		return "", false
	}
}

// Valid reports whether r is a member of the role enumeration.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}
