package authz

import "hfrat-service/internal/model"

// Principal is the authenticated caller, decoded from the JWT by the auth
// middleware and passed explicitly into every permission check.
type Principal struct {
	UserID      uint
	Username    string
	Role        string
	FacilityID  *uint
	IsStaff     bool
	IsSuperuser bool
}

// EffectiveRole is the role reported to clients. Staff and superuser
// accounts are coerced to ADMIN regardless of the stored role.
func (p Principal) EffectiveRole() string {
	if p.Role != model.RoleAdministrator && (p.IsStaff || p.IsSuperuser) {
		return model.RoleAdministrator
	}
	return p.Role
}

// Predicate decides whether a principal may perform an operation class.
type Predicate func(p Principal) bool

// ReporterOnly admits only REPORTER users.
func ReporterOnly(p Principal) bool {
	return p.Role == model.RoleReporter
}

// MonitorOnly admits only MONITOR users.
func MonitorOnly(p Principal) bool {
	return p.Role == model.RoleMonitor
}

// AdminOnly admits ADMIN users plus the staff/superuser escape hatch.
func AdminOnly(p Principal) bool {
	return p.Role == model.RoleAdministrator || p.IsStaff || p.IsSuperuser
}

// MonitorOrAdmin admits MONITOR users and anyone AdminOnly admits.
func MonitorOrAdmin(p Principal) bool {
	return MonitorOnly(p) || AdminOnly(p)
}

// Deny messages, keyed by the predicate they belong to. Surfaced with 403
// so a wrong role is distinguishable from a missing or invalid token.
const (
	MsgReporterOnly   = "Only REPORTER users may access this endpoint."
	MsgMonitorOnly    = "Only MONITOR users may access this endpoint."
	MsgAdminOnly      = "Only admin users may access this endpoint."
	MsgMonitorOrAdmin = "Only MONITOR or admin users may access this endpoint."
)
