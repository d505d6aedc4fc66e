// Package bucket implements the label store: a dense H×N grid, one doubly
// linked list of labels per (time, activity) cell. A
// hand-rolled intrusive list is used instead of container/list because
// each cell must keep a stable address while its head pointer is relinked
// on removal (see Remove below) — a shape container/list's opaque Element
// does not give for free.
package bucket

import "github.com/charlotteesavage/ev-scheduling-dp/internal/label"

// Node is one intrusive list entry. The grid holds *Node, not *label.Label
// directly, so a label can be unlinked in O(1) without walking the cell.
type Node struct {
	Label *label.Label
	prev  *Node
	next  *Node
}

// cell is a doubly linked list with a stable head pointer: Grid.cells[i][j]
// never changes address across insert/remove, only the Node it points at.
type cell struct {
	head *Node
}

// Grid is the H×N label store: H+1 time slots (0..Horizon inclusive) by N
// activities.
type Grid struct {
	horizon int
	n       int
	cells   [][]cell
}

// New allocates an empty (horizon+1) x n grid.
func New(horizon, n int) *Grid {
	cells := make([][]cell, horizon+1)
	for t := range cells {
		cells[t] = make([]cell, n)
	}
	return &Grid{horizon: horizon, n: n, cells: cells}
}

func (g *Grid) at(t, actID int) *cell {
	return &g.cells[t][actID]
}

// Insert prepends l to the (t, actID) cell and returns the Node handle
// used to Remove it later.
func (g *Grid) Insert(t, actID int, l *label.Label) *Node {
	c := g.at(t, actID)
	n := &Node{Label: l, next: c.head}
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	return n
}

// Remove unlinks n from its cell in O(1).
func (g *Grid) Remove(t, actID int, n *Node) {
	c := g.at(t, actID)
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
}

// Each calls fn for every label currently stored at (t, actID), in
// most-recently-inserted-first order. fn must not mutate the cell being
// iterated (insert/remove from within fn is undefined).
func (g *Grid) Each(t, actID int, fn func(*label.Label)) {
	for n := g.at(t, actID).head; n != nil; n = n.next {
		fn(n.Label)
	}
}

// All collects every label at (t, actID) into a slice, for call sites that
// need to mutate the cell while scanning (e.g. dominance pruning, which
// removes dominated labels mid-scan).
func (g *Grid) All(t, actID int) []*Node {
	var out []*Node
	for n := g.at(t, actID).head; n != nil; n = n.next {
		out = append(out, n)
	}
	return out
}

// TryInsert applies the dominance rule before inserting cand into
// (t, actID): any existing label that dominates cand rejects the
// insert; any existing label cand dominates is removed first. Returns
// whether cand was inserted.
func (g *Grid) TryInsert(t, actID int, cand *label.Label) bool {
	for _, n := range g.All(t, actID) {
		if label.Dominates(n.Label, cand) {
			return false
		}
	}
	for _, n := range g.All(t, actID) {
		if label.Dominates(cand, n.Label) {
			g.Remove(t, actID, n)
		}
	}
	g.Insert(t, actID, cand)
	return true
}

// Horizon returns H, the last valid time index.
func (g *Grid) Horizon() int { return g.horizon }

// N returns the number of activities the grid is indexed by.
func (g *Grid) N() int { return g.n }
