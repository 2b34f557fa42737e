package types_test

import (
	"testing"

	"github.com/lab9-dev/pythia/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestIsBoard(t *testing.T) {
	gt.Array(t, types.BoardRoles()).Length(8)

	for _, role := range types.BoardRoles() {
		gt.Bool(t, role.IsBoard()).True()
	}

	t.Run("comparison ignores case", func(t *testing.T) {
		gt.Bool(t, types.RoleCode("president").IsBoard()).True()
		gt.Bool(t, types.RoleCode("Tech_Director").IsBoard()).True()
	})

	t.Run("non-board codes are excluded", func(t *testing.T) {
		gt.Bool(t, types.RoleCode("MEMBER").IsBoard()).False()
		gt.Bool(t, types.RoleCode("").IsBoard()).False()
	})
}
