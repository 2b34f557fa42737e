package types

import "strings"

// RoleCode is the access code attached to a team member record.
type RoleCode string

const (
	RolePresident         RoleCode = "PRESIDENT"
	RoleVicePresident     RoleCode = "VICE_PRESIDENT"
	RoleTechDirector      RoleCode = "TECH_DIRECTOR"
	RoleEventsDirector    RoleCode = "EVENTS_DIRECTOR"
	RoleMarketingDirector RoleCode = "MARKETING_DIRECTOR"
	RoleFinanceDirector   RoleCode = "FINANCE_DIRECTOR"
	RoleOutreachDirector  RoleCode = "OUTREACH_DIRECTOR"
	RoleDesignDirector    RoleCode = "DESIGN_DIRECTOR"
)

// BoardRoles returns the closed set of board role codes.
func BoardRoles() []RoleCode {
	return []RoleCode{
		RolePresident,
		RoleVicePresident,
		RoleTechDirector,
		RoleEventsDirector,
		RoleMarketingDirector,
		RoleFinanceDirector,
		RoleOutreachDirector,
		RoleDesignDirector,
	}
}

// IsBoard checks whether the role code belongs to the board set.
// Comparison is case-insensitive since upstream records are not
// normalized.
func (r RoleCode) IsBoard() bool {
	code := RoleCode(strings.ToUpper(string(r)))
	for _, role := range BoardRoles() {
		if code == role {
			return true
		}
	}
	return false
}

// String returns the string representation of the role code
func (r RoleCode) String() string {
	return string(r)
}
