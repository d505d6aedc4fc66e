package engine

import (
	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/label"
)

// ScheduleStep is one activity occurrence in the extracted result:
// activity id, group, start_time, duration, SoC trajectory (start and
// end), charging mode/duration/cost, and cumulative utility.
type ScheduleStep struct {
	ActivityID int
	Group      int

	StartTime int
	Duration  int

	SoCStart float64
	SoCEnd   float64

	ChargeMode     domain.ChargeMode
	ChargeDuration int
	ChargeCost     float64

	CumulativeUtility float64
}

// Schedule is the chronological result of a solve.
type Schedule struct {
	Steps []ScheduleStep

	FinalUtility float64
	FinalSoC     float64

	// PossiblyNonElementary is set when the DSSR iteration cap was hit
	// with cycles still present, so the returned schedule may still
	// revisit a non-home group more than once.
	PossiblyNonElementary bool
}

// extractSchedule walks best.Previous to the root, reversing into a
// chronological schedule, and collapses the per-interval label chain into
// one ScheduleStep per distinct activity occurrence.
func extractSchedule(best *label.Label, activities domain.ActivitySet) *Schedule {
	chain := chainOf(best)

	sched := &Schedule{FinalUtility: best.Utility, FinalSoC: best.CurrentSoC}

	start := 0
	for start < len(chain) {
		end := start
		for end+1 < len(chain) && chain[end+1].ActID == chain[start].ActID {
			end++
		}
		entry := chain[start]
		exit := chain[end]
		act := activities.Activities[entry.ActID]
		costBefore := 0.0
		if entry.Previous != nil {
			costBefore = entry.Previous.ChargeCost
		}

		sched.Steps = append(sched.Steps, ScheduleStep{
			ActivityID:        entry.ActID,
			Group:             act.Group,
			StartTime:         entry.StartTime,
			Duration:          exit.Duration,
			SoCStart:          entry.SoCAtActivityStart,
			SoCEnd:            exit.CurrentSoC,
			ChargeMode:        act.ChargeMode,
			ChargeDuration:    exit.ChargeDuration,
			ChargeCost:        exit.ChargeCost - costBefore,
			CumulativeUtility: exit.Utility,
		})
		start = end + 1
	}
	return sched
}
