// Package analysis computes post-solve schedule metrics and rankings: a
// host-side reporting layer kept outside the core engine.
package analysis

import (
	"math"
	"sort"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/engine"
)

// ScheduleMetrics is a schedule-level summary independent of how the
// schedule was produced.
type ScheduleMetrics struct {
	StepCount int

	FinalUtility float64
	FinalSoC     float64

	TotalChargeCost     float64
	TotalChargeDuration int

	GroupsVisited    map[int]int
	DistinctNonHome  int
	MinSoCObserved   float64
	MaxSoCObserved   float64

	PossiblyNonElementary bool
}

// Compute summarizes a solved schedule.
func Compute(sched *engine.Schedule) ScheduleMetrics {
	m := ScheduleMetrics{
		StepCount:             len(sched.Steps),
		FinalUtility:          sched.FinalUtility,
		FinalSoC:              sched.FinalSoC,
		PossiblyNonElementary: sched.PossiblyNonElementary,
		GroupsVisited:         make(map[int]int),
		MinSoCObserved:        math.Inf(1),
		MaxSoCObserved:        math.Inf(-1),
	}
	for _, s := range sched.Steps {
		m.TotalChargeCost += s.ChargeCost
		m.TotalChargeDuration += s.ChargeDuration
		m.GroupsVisited[s.Group]++
		if s.Group != 0 {
			m.DistinctNonHome++
		}
		m.MinSoCObserved = math.Min(m.MinSoCObserved, math.Min(s.SoCStart, s.SoCEnd))
		m.MaxSoCObserved = math.Max(m.MaxSoCObserved, math.Max(s.SoCStart, s.SoCEnd))
	}
	return m
}

// RankedSolve pairs a solved schedule with the initial SoC it was solved
// from, for RankByUtility.
type RankedSolve struct {
	InitialSoC float64
	Schedule   *engine.Schedule
	Metrics    ScheduleMetrics
}

// RankByUtility sorts candidate solves (e.g. from multiple sampled initial
// SoC draws) descending by final utility.
func RankByUtility(solves []RankedSolve) []RankedSolve {
	out := make([]RankedSolve, len(solves))
	copy(out, solves)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Metrics.FinalUtility > out[j].Metrics.FinalUtility
	})
	return out
}

// GroupCoverage reports which non-home groups among the candidate
// activity pool were never visited, useful for sanity-checking a solve
// against the activity set it ran over.
func GroupCoverage(sched *engine.Schedule, activities domain.ActivitySet) (visited, missing []int) {
	seen := make(map[int]bool)
	for _, s := range sched.Steps {
		seen[s.Group] = true
	}
	allGroups := make(map[int]bool)
	for _, a := range activities.Activities {
		if a.Group != 0 {
			allGroups[a.Group] = true
		}
	}
	for g := range allGroups {
		if seen[g] {
			visited = append(visited, g)
		} else {
			missing = append(missing, g)
		}
	}
	sort.Ints(visited)
	sort.Ints(missing)
	return visited, missing
}
