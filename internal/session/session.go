// Package session describes who is using the desktop. Authentication is
// handled elsewhere; the desktop only needs a user name and a role set for
// permission checks.
package session

import (
	"slices"
	"strings"
)

// Well-known roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session is the signed-in user.
type Session struct {
	User  string
	Roles []string
}

// New returns a session with normalized, de-duplicated roles. An empty role
// list becomes [user].
func New(user string, roles ...string) Session {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" && !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		out = append(out, RoleUser)
	}
	if user == "" {
		user = "guest"
	}
	return Session{User: user, Roles: out}
}

// ParseRoles splits a comma separated role list.
func ParseRoles(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// HasCapability reports whether the session holds the named role. Admins
// hold every capability.
func (s Session) HasCapability(name string) bool {
	return slices.Contains(s.Roles, name) || slices.Contains(s.Roles, RoleAdmin)
}

// IsAdmin reports whether the session has the admin role.
func (s Session) IsAdmin() bool {
	return slices.Contains(s.Roles, RoleAdmin)
}

// String renders the session for status lines.
func (s Session) String() string {
	return s.User + " (" + strings.Join(s.Roles, ", ") + ")"
}
