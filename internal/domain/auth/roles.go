package auth

import "strings"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

// ReviewerRoles may view cohort scorecards and rankings.
var ReviewerRoles = []string{RoleManager, RoleHR, RoleAdmin}

func HasRole(user UserContext, roles ...string) bool {
	name := strings.ToLower(strings.TrimSpace(user.RoleName))
	for _, role := range roles {
		if name == role {
			return true
		}
	}
	return false
}
