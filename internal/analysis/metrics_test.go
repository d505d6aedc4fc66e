package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/engine"
)

func sampleSchedule(utility float64) *engine.Schedule {
	return &engine.Schedule{
		FinalUtility: utility,
		FinalSoC:     0.5,
		Steps: []engine.ScheduleStep{
			{ActivityID: 0, Group: 0, SoCStart: 0.9, SoCEnd: 0.9},
			{ActivityID: 1, Group: 2, SoCStart: 0.9, SoCEnd: 0.6, ChargeCost: 2.0, ChargeDuration: 15},
			{ActivityID: 2, Group: 0, SoCStart: 0.6, SoCEnd: 0.5},
		},
	}
}

func TestComputeAggregatesCorrectly(t *testing.T) {
	m := Compute(sampleSchedule(10))
	assert.Equal(t, 3, m.StepCount)
	assert.Equal(t, 2.0, m.TotalChargeCost)
	assert.Equal(t, 15, m.TotalChargeDuration)
	assert.Equal(t, 1, m.DistinctNonHome)
	assert.InDelta(t, 0.5, m.MinSoCObserved, 1e-9)
	assert.InDelta(t, 0.9, m.MaxSoCObserved, 1e-9)
}

func TestRankByUtilityDescending(t *testing.T) {
	solves := []RankedSolve{
		{InitialSoC: 0.5, Schedule: sampleSchedule(5), Metrics: Compute(sampleSchedule(5))},
		{InitialSoC: 0.9, Schedule: sampleSchedule(20), Metrics: Compute(sampleSchedule(20))},
		{InitialSoC: 0.7, Schedule: sampleSchedule(10), Metrics: Compute(sampleSchedule(10))},
	}
	ranked := RankByUtility(solves)
	assert.Equal(t, 20.0, ranked[0].Metrics.FinalUtility)
	assert.Equal(t, 10.0, ranked[1].Metrics.FinalUtility)
	assert.Equal(t, 5.0, ranked[2].Metrics.FinalUtility)
}

func TestGroupCoverageVisitedAndMissing(t *testing.T) {
	activities := domain.ActivitySet{Activities: []domain.Activity{
		{ID: 0, Group: 0},
		{ID: 1, Group: 2},
		{ID: 2, Group: 3},
		{ID: 3, Group: 0},
	}}
	visited, missing := GroupCoverage(sampleSchedule(1), activities)
	assert.Equal(t, []int{2}, visited)
	assert.Equal(t, []int{3}, missing)
}
