// File: kts/models/admin.go
package models

import "time"

// Admin is a back-office account.
type Admin struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	IsSuperAdmin bool      `bson:"is_super_admin" json:"is_super_admin"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// AdminPermissions is the per-admin capability record. A super-admin has
// every capability regardless of these flags.
type AdminPermissions struct {
	AdminID string          `bson:"admin_id" json:"admin_id"`
	Flags   map[string]bool `bson:"flags" json:"flags"`
}

// Allows reports whether the record grants the named capability.
func (p *AdminPermissions) Allows(flag string) bool {
	if p == nil || p.Flags == nil {
		return false
	}
	return p.Flags[flag]
}
