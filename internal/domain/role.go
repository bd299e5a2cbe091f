package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role is a tenant or platform role. Roles are totally ordered:
// RoleMember < RoleAdmin < RoleOwner. The zero value is RoleNone.
type Role uint8

const (
	RoleNone Role = iota

	// RoleMember can use the tenant's resources
	RoleMember

	// RoleAdmin manages the tenant's members and settings
	RoleAdmin

	// RoleOwner is the platform-wide grant; it outranks every tenant role
	RoleOwner
)

var roleNames = map[Role]string{
	RoleMember: "member",
	RoleAdmin:  "admin",
	RoleOwner:  "owner",
}

// ValidRoles contains all assignable roles, lowest first
var ValidRoles = []Role{RoleMember, RoleAdmin, RoleOwner}

// ParseRole converts the storage form of a role into a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

// IsValidRole checks if a given role string names an assignable role
func IsValidRole(role string) bool {
	_, err := ParseRole(role)
	return err == nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "none"
}

// AtLeast reports whether r ranks equal to or above min.
// RoleNone never satisfies any minimum.
func (r Role) AtLeast(min Role) bool {
	if r == RoleNone {
		return false
	}
	return r >= min
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the role as text so the tables stay readable.
func (r Role) Value() (driver.Value, error) {
	if r == RoleNone {
		return nil, fmt.Errorf("cannot store empty role")
	}
	return r.String(), nil
}

func (r *Role) Scan(value any) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("Role: unsupported scan type %T", value)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
