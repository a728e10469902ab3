// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "fmt"

// Role identifies what a user is allowed to do in a session.
type Role int

const (
	RoleUnknown Role = iota
	RoleListener
	RoleSpeaker
	RoleOrganizer
)

// ParseRole converts the wire string into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "listener":
		return RoleListener, nil
	case "speaker":
		return RoleSpeaker, nil
	case "organizer":
		return RoleOrganizer, nil
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	switch r {
	case RoleListener:
		return "listener"
	case RoleSpeaker:
		return "speaker"
	case RoleOrganizer:
		return "organizer"
	}
	return "unknown"
}
