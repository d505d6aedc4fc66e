package engine

import (
	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/label"
)

// occurrence is one activity instance in a chronological label chain: the
// chain index of the label at which that activity was entered (its
// arrival label).
type occurrence struct {
	chainIdx int
	actID    int
	group    int
}

// occurrences collapses a chronological label chain into one entry per
// distinct activity instance (the DP extends one interval at a time, so a
// single activity visit spans many consecutive same-ActID labels).
func occurrences(chain []*label.Label) []occurrence {
	var occs []occurrence
	for i, l := range chain {
		if i == 0 || chain[i-1].ActID != l.ActID {
			occs = append(occs, occurrence{chainIdx: i, actID: l.ActID, group: -1})
		}
	}
	return occs
}

// findCycle scans for the most recent activity p1 whose group repeats at
// an earlier occurrence p2 with a different activity id, excluding the
// last two occurrences (DUSK and the occurrence just before it, whatever
// its group) from the scan.
func findCycle(chain []*label.Label, activities domain.ActivitySet) (p1, p2 occurrence, found bool) {
	occs := occurrences(chain)
	for i := range occs {
		occs[i].group = activities.Activities[occs[i].actID].Group
	}
	if len(occs) <= 2 {
		return occurrence{}, occurrence{}, false
	}
	candidates := occs[:len(occs)-2]

	for i := len(candidates) - 1; i >= 0; i-- {
		c1 := candidates[i]
		if c1.group == 0 {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			c2 := candidates[j]
			if c2.group == c1.group && c2.actID != c1.actID {
				return c1, c2, true
			}
		}
	}
	return occurrence{}, occurrence{}, false
}

// markCycle is the DSSR remediation step: for every intermediate label
// between p2 and p1, forbid p1's group on that label's activity so the
// next sweep cannot retrace the same non-elementary loop.
func markCycle(chain []*label.Label, p1, p2 occurrence, activities domain.ActivitySet) {
	for i := p2.chainIdx + 1; i < p1.chainIdx; i++ {
		id := chain[i].ActID
		act := &activities.Activities[id]
		act.Memory = act.Memory.With(p1.group)
	}
}
