package scorecard

import (
	"fmt"
	"strings"
)

type ScopeKind int

const (
	ScopeCompany ScopeKind = iota
	ScopeDepartment
	ScopeEmployee
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeDepartment:
		return "department"
	case ScopeEmployee:
		return "employee"
	default:
		return "company"
	}
}

// ScopeQuery selects the subjects of one evaluation. ID is empty for
// ScopeCompany and required otherwise.
type ScopeQuery struct {
	Kind ScopeKind
	ID   string
}

func CompanyScope() ScopeQuery {
	return ScopeQuery{Kind: ScopeCompany}
}

func DepartmentScope(departmentID string) ScopeQuery {
	return ScopeQuery{Kind: ScopeDepartment, ID: strings.TrimSpace(departmentID)}
}

func EmployeeScope(userID string) ScopeQuery {
	return ScopeQuery{Kind: ScopeEmployee, ID: strings.TrimSpace(userID)}
}

// ScopeFromDepartment maps the optional department filter onto a scope.
func ScopeFromDepartment(departmentID string) ScopeQuery {
	if strings.TrimSpace(departmentID) == "" {
		return CompanyScope()
	}
	return DepartmentScope(departmentID)
}

func (q ScopeQuery) Validate() error {
	if q.Kind != ScopeCompany && q.ID == "" {
		return fmt.Errorf("%w: %s scope requires an id", ErrInvalidScope, q.Kind)
	}
	return nil
}
