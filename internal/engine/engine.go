// Package engine is the core: the label-setting DP driver, DSSR outer
// loop, and result extraction. The forward sweep follows the same
// back-pointer-chasing shape as a classic per-interval dynamic-programming
// scan, generalized from a 1-D SoC-state sweep to a single 2-D
// (time x activity) bucketed label store per sweep.
package engine

import (
	"fmt"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/bucket"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/label"
)

// ErrorKind tags the failure taxonomy a solve can abort with.
type ErrorKind int

const (
	// Infeasible: no label reached the terminal cell.
	Infeasible ErrorKind = iota
	// ParameterError: rejected at construction, before any solve runs.
	ParameterError
)

func (k ErrorKind) String() string {
	switch k {
	case Infeasible:
		return "infeasible"
	case ParameterError:
		return "parameter_error"
	default:
		return "unknown"
	}
}

// SolveError is returned for the two failure kinds a solve can abort with.
// DSSR non-termination is not modeled as an error; it returns the current
// best schedule with a possibly-non-elementary flag instead — see
// Schedule.PossiblyNonElementary.
type SolveError struct {
	Kind ErrorKind
	Msg  string
}

func (e *SolveError) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

// Solver bundles the per-solve configuration instead of holding it as
// process-wide state: the general parameters are read-only for the
// lifetime of one Solve call, and the activity set changes only in its
// DSSR memory between sweeps, so independent Solvers backed by
// independent buckets and activity arrays can run concurrently.
type Solver struct {
	activities domain.ActivitySet
	params     domain.GeneralParams

	// OnDSSRIteration, if set, is called after every DP sweep with the
	// iteration index, the best terminal utility found, and whether a
	// cycle was detected (another sweep follows unless the DSSR iteration
	// cap has been reached). It is not called when a sweep leaves the
	// terminal cell empty. Used by
	// internal/progress to stream solve-in-progress events without the
	// engine depending on a WebSocket type.
	OnDSSRIteration func(iteration int, bestUtility float64, cycleFound bool)
}

// NewSolver validates its inputs up front, rejecting bad configuration at
// the entry point rather than partway through a solve, and returns a
// ready-to-run Solver.
func NewSolver(activities domain.ActivitySet, params domain.GeneralParams) (*Solver, error) {
	if err := activities.Validate(); err != nil {
		return nil, &SolveError{Kind: ParameterError, Msg: err.Error()}
	}
	if err := params.Validate(); err != nil {
		return nil, &SolveError{Kind: ParameterError, Msg: err.Error()}
	}
	return &Solver{activities: activities, params: params}, nil
}

// Solve runs {build bucket -> DP sweep -> find best in terminal cell ->
// DSSR check} to a fixed point, starting the DAWN root label at
// initialSoC. It clears every Activity's DSSR memory before the first
// sweep, since memory only accumulates within one solve.
func (s *Solver) Solve(initialSoC float64) (*Schedule, error) {
	s.activities.ResetMemory()

	n := s.activities.N()
	h := s.params.Horizon

	for iter := 0; ; iter++ {
		grid := bucket.New(h-1, n)
		root := label.Root(s.activities.Dawn(), initialSoC)
		grid.Insert(root.Time, 0, root)

		for t := root.Time; t <= h-2; t++ {
			for aFrom := 0; aFrom < n; aFrom++ {
				for _, node := range grid.All(t, aFrom) {
					l := node.Label
					for aTo := 0; aTo < n; aTo++ {
						to := s.activities.Activities[aTo]
						if !s.feasible(l, to) {
							continue
						}
						next := s.extend(l, to)
						grid.TryInsert(next.Time, aTo, next)
					}
				}
			}
		}

		best := bestInCell(grid, h-1, n-1)
		if best == nil {
			return nil, &SolveError{Kind: Infeasible, Msg: "no label reached the terminal cell"}
		}

		p1, p2, found := findCycle(chainOf(best), s.activities)
		if s.OnDSSRIteration != nil {
			s.OnDSSRIteration(iter, best.Utility, found)
		}
		if !found {
			return extractSchedule(best, s.activities), nil
		}
		if iter >= s.params.DSSRMaxIterations {
			sched := extractSchedule(best, s.activities)
			sched.PossiblyNonElementary = true
			return sched, nil
		}
		markCycle(chainOf(best), p1, p2, s.activities)
	}
}

// bestInCell returns the highest-utility label at bucket[t][actID], or nil
// if the cell is empty.
func bestInCell(grid *bucket.Grid, t, actID int) *label.Label {
	var best *label.Label
	grid.Each(t, actID, func(l *label.Label) {
		if best == nil || l.Utility > best.Utility {
			best = l
		}
	})
	return best
}

// chainOf walks back.Previous to the root and returns the chronological
// (root-first) sequence of labels, the shared shape both DSSR cycle
// detection and result extraction need.
func chainOf(best *label.Label) []*label.Label {
	var reversed []*label.Label
	for l := best; l != nil; l = l.Previous {
		reversed = append(reversed, l)
	}
	chain := make([]*label.Label, len(reversed))
	for i, l := range reversed {
		chain[len(reversed)-1-i] = l
	}
	return chain
}
