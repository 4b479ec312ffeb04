// File: kts/services/admin/permissions.go
package admin

import "kts/models"

// Actor is an authenticated admin together with their permission record
// (nil when no record exists).
type Actor struct {
	Admin       *models.Admin
	Permissions *models.AdminPermissions
}

// conservativeDefaults apply when an admin has no permission row at all:
// read-only dashboard access, nothing else.
var conservativeDefaults = map[string]bool{
	models.PermViewDashboard: true,
}

// CanPerform is the permission gate. A super-admin passes every check
// regardless of stored flags; everyone else needs the flag set true, falling
// back to the conservative defaults when no record exists.
func CanPerform(actor *Actor, flag string) bool {
	if actor == nil || actor.Admin == nil {
		return false
	}
	if actor.Admin.IsSuperAdmin {
		return true
	}
	if actor.Permissions == nil {
		return conservativeDefaults[flag]
	}
	return actor.Permissions.Allows(flag)
}
