package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi-parthasarathy/flowgen/pkg/workflow"
)

func buildGraph(ids []string, edges [][2]string) *workflow.Graph {
	g := &workflow.Graph{Tools: make(map[string]*workflow.Tool)}
	for _, id := range ids {
		g.Tools[id] = &workflow.Tool{ID: id, Kind: workflow.KindFilter}
	}
	for _, e := range edges {
		g.Connections = append(g.Connections, &workflow.Connection{
			From: e[0], To: e[1], FromAnchor: "Output", ToAnchor: "Input",
		})
	}
	return g
}

func TestResolve_Chain(t *testing.T) {
	g := buildGraph([]string{"3", "1", "2"}, [][2]string{{"1", "2"}, {"2", "3"}})
	plan, err := workflow.Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, workflow.Plan{"1", "2", "3"}, plan)
}

func TestResolve_NumericTieBreak(t *testing.T) {
	// Three independent sources; "2" must schedule before "10".
	g := buildGraph([]string{"10", "2", "1"}, nil)
	plan, err := workflow.Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, workflow.Plan{"1", "2", "10"}, plan)
}

func TestResolve_Diamond(t *testing.T) {
	g := buildGraph([]string{"1", "2", "3", "4"}, [][2]string{
		{"1", "2"}, {"1", "3"}, {"2", "4"}, {"3", "4"},
	})
	plan, err := workflow.Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, workflow.Plan{"1", "2", "3", "4"}, plan)
}

func TestResolve_Cycle(t *testing.T) {
	g := buildGraph([]string{"1", "2", "3"}, [][2]string{
		{"1", "2"}, {"2", "3"}, {"3", "2"},
	})
	_, err := workflow.Resolve(g)
	var cerr *workflow.CycleError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{"2", "3"}, cerr.Members)
}

func TestResolve_SelfLoop(t *testing.T) {
	g := buildGraph([]string{"1"}, [][2]string{{"1", "1"}})
	_, err := workflow.Resolve(g)
	var cerr *workflow.CycleError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{"1"}, cerr.Members)
}

func TestResolve_DanglingConnection(t *testing.T) {
	g := buildGraph([]string{"1"}, [][2]string{{"1", "99"}})
	_, err := workflow.Resolve(g)
	var derr *workflow.DanglingError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "99", derr.Conn.To)
}

func TestResolve_EveryEdgeRespectsOrder(t *testing.T) {
	g := buildGraph(
		[]string{"1", "2", "3", "4", "5", "6"},
		[][2]string{{"1", "4"}, {"2", "4"}, {"4", "5"}, {"3", "6"}, {"5", "6"}},
	)
	plan, err := workflow.Resolve(g)
	require.NoError(t, err)
	require.Len(t, plan, 6)

	pos := make(map[string]int, len(plan))
	for i, id := range plan {
		pos[id] = i
	}
	for _, c := range g.Connections {
		assert.Less(t, pos[c.From], pos[c.To], "edge %s→%s out of order", c.From, c.To)
	}
}

func TestSortIDs(t *testing.T) {
	ids := []string{"10", "2", "alpha", "1", "beta"}
	workflow.SortIDs(ids)
	assert.Equal(t, []string{"1", "2", "10", "alpha", "beta"}, ids)
}
