package model

import (
	"maps"

	"github.com/lab9-dev/pythia/pkg/domain/types"
)

// TeamMember is one roster record. Records arriving from upstream with a
// null name are dropped before they reach any cached view, so Name is
// never empty on a cached member.
type TeamMember struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	AccessCode string            `json:"accessCode"`
	Year       int               `json:"year"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Clone returns a deep copy so cache consumers can never mutate the
// cached record through a shared map.
func (m TeamMember) Clone() TeamMember {
	c := m
	if m.Extra != nil {
		c.Extra = maps.Clone(m.Extra)
	}
	return c
}

// IsBoard checks whether the member holds a board role.
func (m TeamMember) IsBoard() bool {
	return types.RoleCode(m.AccessCode).IsBoard()
}
