package label

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
)

func TestDominatesUtilityFloor(t *testing.T) {
	l1 := &Label{Utility: 100, Mem: 0b01, Time: 10}
	l2 := &Label{Utility: 90, Mem: 0b01, Time: 10}
	assert.True(t, Dominates(l1, l2))
	assert.False(t, Dominates(l2, l1))
}

func TestDominatesMemSupersetRequired(t *testing.T) {
	// S5: L1 utility 100 mem={1}, L2 utility 90 mem={1,2}. Neither dominates.
	l1 := &Label{Utility: 100, Mem: domain.GroupMask(0).With(1), Time: 10}
	l2 := &Label{Utility: 90, Mem: domain.GroupMask(0).With(1).With(2), Time: 10}
	assert.False(t, Dominates(l1, l2))
	assert.False(t, Dominates(l2, l1))
}

func TestDominatesTimeNotLater(t *testing.T) {
	l1 := &Label{Utility: 100, Mem: 0, Time: 20}
	l2 := &Label{Utility: 100, Mem: 0, Time: 10}
	// l1 ends later than l2, so l1 cannot dominate l2.
	assert.False(t, Dominates(l1, l2))
	assert.True(t, Dominates(l2, l1))
}

func TestDominatesIsPartialOrder(t *testing.T) {
	// Two labels that are mutually incomparable on utility vs mem must
	// both survive: l1 has the higher utility but the smaller mem, so
	// neither dominates, since none of the three checks collapse into a
	// single scalar.
	l1 := &Label{Utility: 120, Mem: domain.GroupMask(0).With(3), Time: 5}
	l2 := &Label{Utility: 100, Mem: domain.GroupMask(0).With(3).With(4), Time: 5}
	assert.False(t, Dominates(l1, l2))
	assert.False(t, Dominates(l2, l1))
}

func TestRootLabel(t *testing.T) {
	dawn := domain.Activity{ID: 0, MinDuration: 1}
	root := Root(dawn, 0.8)
	assert.Equal(t, 0, root.ActID)
	assert.Equal(t, 1, root.Time)
	assert.Equal(t, 0.8, root.CurrentSoC)
	assert.Nil(t, root.Previous)
}
