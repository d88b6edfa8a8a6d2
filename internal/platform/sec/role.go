// Copyright (c) 2026 BookWise. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The role stored in the JWT is an affordance for the client UI; the real
// enforcement always happens server-side in the route guards and stores.
type UserRole string

const (
	// Unrestricted system access: catalog CRUD, role management, settings
	RoleAdmin UserRole = "admin"

	// Can moderate reviews (visibility and top-review curation)
	RoleController UserRole = "controller"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleController:
		return 30
	case RoleUser:
		return 10
	default:
		return 0
	}
}
