package models

import "fmt"

// Role identifies which identity store owns an account. A role is assigned
// at registration and never changes afterwards.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
	RoleAdmin    Role = "ADMIN"
)

// RolePrecedence is the fixed order in which identity stores are searched
// when resolving a contact identifier.
var RolePrecedence = []Role{RoleCustomer, RoleVendor, RoleAdmin}

// ParseRole validates a role string. The empty string is not a valid role;
// callers that mean "any role" should keep the zero value explicit.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

func (r Role) String() string {
	return string(r)
}
