package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is a coarse-grained permission tier gating endpoint access.
// Stored uppercase in the database; serialized lowercase on the wire.
type Role string

const (
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

// ParseRole validates a wire-format role string (any casing accepted).
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "USER":
		return RoleUser, nil
	case "ADMIN":
		return RoleAdmin, nil
	case "MANAGER":
		return RoleManager, nil
	case "STAFF":
		return RoleStaff, nil
	default:
		return "", fmt.Errorf("invalid role: %q", s)
	}
}

// Wire returns the lowercase form used in JSON payloads.
func (r Role) Wire() string {
	return strings.ToLower(string(r))
}

// MarshalJSON serializes the role in wire format.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Wire())
}

// UnmarshalJSON parses and validates a wire-format role.
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

// OneOf reports whether the role is in the allowed set.
func (r Role) OneOf(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}
