package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupMaskSupersetAndUnion(t *testing.T) {
	m := GroupMask(0).With(1).With(3)
	assert.True(t, m.Has(1))
	assert.True(t, m.Has(3))
	assert.False(t, m.Has(2))

	other := GroupMask(0).With(1)
	assert.True(t, m.IsSuperset(other))
	assert.False(t, other.IsSuperset(m))

	union := GroupMask(0).With(2).Union(other)
	assert.True(t, union.Has(1))
	assert.True(t, union.Has(2))
}

func TestActivityValidateDurationOrdering(t *testing.T) {
	a := Activity{ID: 1, Group: 1, EarliestStart: 0, LatestStart: 10, MinDuration: 5, MaxDuration: 3}
	assert.Error(t, a.Validate())
}

func TestActivityValidateServiceStationRequiresCharging(t *testing.T) {
	a := Activity{ID: 1, Group: 1, MinDuration: 1, MaxDuration: 2, IsServiceStation: true, IsCharging: false}
	assert.Error(t, a.Validate())
}

func TestActivityValidateOK(t *testing.T) {
	a := Activity{
		ID: 1, Group: 1, EarliestStart: 0, LatestStart: 10,
		MinDuration: 1, MaxDuration: 10,
		IsCharging: true, ChargeMode: ChargeSlow,
	}
	assert.NoError(t, a.Validate())
}

func TestActivitySetValidateRequiresDawnDuskGroupZero(t *testing.T) {
	acts := []Activity{
		{ID: 0, Group: 1, MinDuration: 1, MaxDuration: 10},
		{ID: 1, Group: 0, MinDuration: 1, MaxDuration: 10},
	}
	set := ActivitySet{Activities: acts}
	assert.Error(t, set.Validate())
}

func TestActivitySetResetMemory(t *testing.T) {
	acts := []Activity{
		{ID: 0, Group: 0, MinDuration: 1, MaxDuration: 10, Memory: GroupMask(0).With(2)},
		{ID: 1, Group: 0, MinDuration: 1, MaxDuration: 10},
	}
	set := ActivitySet{Activities: acts}
	set.ResetMemory()
	assert.Equal(t, GroupMask(0), set.Activities[0].Memory)
}
