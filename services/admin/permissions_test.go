package admin

import (
	"testing"

	"kts/models"

	"github.com/stretchr/testify/assert"
)

func TestCanPerform(t *testing.T) {
	super := &Actor{Admin: &models.Admin{ID: "a1", IsSuperAdmin: true}}
	granted := &Actor{
		Admin: &models.Admin{ID: "a2"},
		Permissions: &models.AdminPermissions{
			AdminID: "a2",
			Flags: map[string]bool{
				models.PermManageServices: true,
				models.PermManageCoupons:  false,
				models.PermViewDashboard:  true,
			},
		},
	}
	noRecord := &Actor{Admin: &models.Admin{ID: "a3"}}

	tests := []struct {
		name  string
		actor *Actor
		flag  string
		want  bool
	}{
		{"nil actor denied", nil, models.PermViewDashboard, false},
		{"actor without admin denied", &Actor{}, models.PermViewDashboard, false},

		{"super-admin bypasses any flag", super, models.PermManageAdmins, true},
		{"super-admin bypasses unknown flag", super, "made-up-flag", true},

		{"granted flag allowed", granted, models.PermManageServices, true},
		{"explicitly false flag denied", granted, models.PermManageCoupons, false},
		{"absent flag denied", granted, models.PermDeleteAppointments, false},

		{"no record gets dashboard only", noRecord, models.PermViewDashboard, true},
		{"no record denied writes", noRecord, models.PermManageServices, false},
		{"no record denied deletes", noRecord, models.PermDeleteAppointments, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPerform(tt.actor, tt.flag))
		})
	}
}
