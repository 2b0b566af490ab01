package domain

// Role represents staff role in the system
type Role string

const (
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// AuthContext identifies the caller of a service operation.
// It is passed explicitly into every service call.
type AuthContext struct {
	UserID   uint
	Username string
	Role     Role
	// Via is "jwt" or "admin_token"
	Via string
}

// Anonymous is the zero AuthContext
var Anonymous = AuthContext{}

// IsAuthenticated reports whether the context carries a known caller
func (a AuthContext) IsAuthenticated() bool {
	return a.Role != ""
}

// IsAdmin reports whether the caller holds the ADMIN role
func (a AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SystemAuth is used by scheduled jobs and CLI commands
func SystemAuth() AuthContext {
	return AuthContext{Username: "system", Role: RoleAdmin, Via: "system"}
}
