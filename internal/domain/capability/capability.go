package capability

import "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"

// Principal is the authenticated caller as supplied by the identity
// collaborator. The booking core never authenticates; it only gates.
type Principal struct {
	UserID uint
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

func (p Principal) IsMechanic() bool {
	return p.Role == models.RoleMechanic
}

// CanManage is the single ownership gate for appointment mutations:
// admins, the owning customer, and the assigned mechanic.
func CanManage(p Principal, ap *models.Appointment) bool {
	if p.IsAdmin() {
		return true
	}
	if ap.CustomerID == p.UserID {
		return true
	}
	if ap.MechanicID != nil && *ap.MechanicID == p.UserID {
		return true
	}
	return false
}

// CanManageSchedule gates blocked-slot and working-hours maintenance.
func CanManageSchedule(p Principal) bool {
	return p.IsAdmin() || p.IsMechanic()
}
