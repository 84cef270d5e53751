// Package privacy holds the role model and the field projection applied to
// every retrieval result before it crosses a component boundary.
package privacy

import "fmt"

// Role is the closed set of acting-user roles. Every switch over Role
// enumerates all three variants.
type Role int

const (
	RolePatient Role = iota + 1
	RoleDoctor
	RoleAdmin
)

// ParseRole maps the gateway-provided role string onto the closed Role set.
func ParseRole(s string) (Role, error) {
	switch s {
	case "patient", "pasien":
		return RolePatient, nil
	case "doctor", "dokter":
		return RoleDoctor, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RolePatient:
		return "patient"
	case RoleDoctor:
		return "doctor"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor || r == RoleAdmin
}

// UserContext identifies the acting user on a query.
type UserContext struct {
	ID   int64
	Role Role
	Name string
}
