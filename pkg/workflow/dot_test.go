package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi-parthasarathy/flowgen/pkg/workflow"
)

func TestExportDOT(t *testing.T) {
	g := &workflow.Graph{Tools: map[string]*workflow.Tool{
		"1": {ID: "1", Kind: workflow.KindInput},
		"2": {ID: "2", Kind: workflow.KindFilter},
	}}
	g.Connections = []*workflow.Connection{
		{From: "1", To: "2", FromAnchor: "Output", ToAnchor: "Input"},
	}

	dot, err := workflow.ExportDOT(g)
	require.NoError(t, err)
	assert.Contains(t, dot, "digraph workflow")
	assert.Contains(t, dot, `"1"->"2"`)
	assert.Contains(t, dot, `filter`)
}

func TestExportDOT_AnchorLabel(t *testing.T) {
	g := &workflow.Graph{Tools: map[string]*workflow.Tool{
		"1": {ID: "1", Kind: workflow.KindFilter},
		"2": {ID: "2", Kind: workflow.KindOutput},
	}}
	g.Connections = []*workflow.Connection{
		{From: "1", To: "2", FromAnchor: "False", ToAnchor: "Input"},
	}

	dot, err := workflow.ExportDOT(g)
	require.NoError(t, err)
	assert.Contains(t, dot, "False")
}
