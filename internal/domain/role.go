package domain

import (
	"fmt"
	"strings"
)

type Role uint8

const (
	RoleUser Role = iota + 1
	RoleAdmin
	RoleSuperAdmin
)

var roleNames = map[Role]string{
	RoleUser:       "USER",
	RoleAdmin:      "ADMIN",
	RoleSuperAdmin: "SUPER_ADMIN",
}

// String returns the wire form of the role. It is the only place role
// names are spelled out.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}

	return fmt.Sprintf("Role(%d)", uint8(r))
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))

	for role, roleName := range roleNames {
		if roleName == name {
			return role, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}

	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}

	*r = role
	return nil
}

type Roles []Role

func ParseRoles(values ...string) (Roles, error) {
	roles := make(Roles, 0, len(values))

	for _, v := range values {
		role, err := ParseRole(v)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, nil
}

func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}

	return false
}

func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.String()
	}

	return out
}

// Highest returns the most privileged role in the set, or zero for an empty set.
func (rs Roles) Highest() Role {
	var top Role
	for _, r := range rs {
		if r.Valid() && r > top {
			top = r
		}
	}

	return top
}
