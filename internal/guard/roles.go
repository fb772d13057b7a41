// Package guard provides role definitions and the authorization decision
// applied before protected routes forward to the content API.
package guard

// Role is a caller's role as carried in the session.
type Role string

// Roles known to the gateway. USER through SUPER_ADMIN are assignable through
// the admin panel; AUTHOR and MEMBER exist backend-side and may appear in
// sessions created elsewhere.
const (
	RoleUser       Role = "USER"
	RoleAuthor     Role = "AUTHOR"
	RoleMember     Role = "MEMBER"
	RoleEditor     Role = "EDITOR"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

var displayNames = map[Role]string{
	RoleUser:       "User",
	RoleAuthor:     "Author",
	RoleMember:     "Member",
	RoleEditor:     "Editor",
	RoleAdmin:      "Admin",
	RoleSuperAdmin: "Super Admin",
}

// Valid reports whether the role is one the gateway knows.
func (r Role) Valid() bool {
	_, ok := displayNames[r]
	return ok
}

// DisplayName returns the human-readable form used in error messages.
func (r Role) DisplayName() string {
	if name, ok := displayNames[r]; ok {
		return name
	}
	return string(r)
}

// ParseRole validates a raw role string from a session or request body.
func ParseRole(raw string) (Role, bool) {
	role := Role(raw)
	return role, role.Valid()
}
