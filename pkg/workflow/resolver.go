package workflow

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Plan is a topologically valid linear ordering of tool ids.
type Plan []string

// DanglingError is returned when a connection references a tool id that
// does not exist in the graph. Fatal: no plan is produced.
type DanglingError struct {
	Conn Connection
}

func (e *DanglingError) Error() string {
	return fmt.Sprintf("connection %s→%s references a nonexistent tool",
		e.Conn.From, e.Conn.To)
}

// CycleError is returned when the graph is not a DAG. Members lists every
// tool id that could not be scheduled, in ascending id order.
type CycleError struct {
	Members []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("workflow contains a cycle among tools [%s]",
		strings.Join(e.Members, ", "))
}

// Resolve orders the graph's tools into an execution plan using a Kahn
// topological sort. Ties between simultaneously ready tools are broken by
// ascending id so that the same document always yields the same plan.
func Resolve(g *Graph) (Plan, error) {
	for _, c := range g.Connections {
		if _, ok := g.Tools[c.From]; !ok {
			return nil, &DanglingError{Conn: *c}
		}
		if _, ok := g.Tools[c.To]; !ok {
			return nil, &DanglingError{Conn: *c}
		}
	}

	indeg := make(map[string]int, len(g.Tools))
	for id := range g.Tools {
		indeg[id] = 0
	}
	for _, c := range g.Connections {
		indeg[c.To]++
	}

	var ready []string
	for id, d := range indeg {
		if d == 0 {
			ready = append(ready, id)
		}
	}

	plan := make(Plan, 0, len(g.Tools))
	for len(ready) > 0 {
		// Smallest ready id first; the ready set is small, a scan is fine.
		min := 0
		for i := 1; i < len(ready); i++ {
			if lessID(ready[i], ready[min]) {
				min = i
			}
		}
		id := ready[min]
		ready = append(ready[:min], ready[min+1:]...)
		plan = append(plan, id)

		for _, c := range g.Outgoing(id) {
			indeg[c.To]--
			if indeg[c.To] == 0 {
				ready = append(ready, c.To)
			}
		}
	}

	if len(plan) < len(g.Tools) {
		var members []string
		emitted := make(map[string]bool, len(plan))
		for _, id := range plan {
			emitted[id] = true
		}
		for id := range g.Tools {
			if !emitted[id] {
				members = append(members, id)
			}
		}
		SortIDs(members)
		return nil, &CycleError{Members: members}
	}
	return plan, nil
}

// lessID orders tool ids numerically when both parse as integers and
// lexicographically otherwise, so that "2" sorts before "10".
func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// SortIDs sorts tool ids in ascending id order (numeric when possible).
func SortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })
}
