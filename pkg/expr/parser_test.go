package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi-parthasarathy/flowgen/pkg/expr"
)

func TestParse_Precedence(t *testing.T) {
	e, err := expr.Parse(`[Amount] > 1000 AND [Region] = "West"`)
	require.NoError(t, err)

	and, ok := e.(*expr.Binary)
	require.True(t, ok)
	assert.Equal(t, "AND", and.Op)

	left, ok := and.Left.(*expr.Binary)
	require.True(t, ok)
	assert.Equal(t, ">", left.Op)
	assert.Equal(t, "Amount", left.Left.(*expr.FieldRef).Name)

	right, ok := and.Right.(*expr.Binary)
	require.True(t, ok)
	assert.Equal(t, "=", right.Op)
	assert.Equal(t, "West", right.Right.(*expr.Literal).Value)
}

func TestParse_ArithmeticBindsTighterThanComparison(t *testing.T) {
	e, err := expr.Parse(`[A] + 1 * 2 > 5`)
	require.NoError(t, err)

	cmp := e.(*expr.Binary)
	assert.Equal(t, ">", cmp.Op)
	add := cmp.Left.(*expr.Binary)
	assert.Equal(t, "+", add.Op)
	mul := add.Right.(*expr.Binary)
	assert.Equal(t, "*", mul.Op)
}

func TestParse_AlternateOperatorSpellings(t *testing.T) {
	a, err := expr.Parse(`[X] == 1 && ![Y] || [Z] != 2`)
	require.NoError(t, err)
	b, err := expr.Parse(`[X] = 1 AND NOT [Y] OR [Z] <> 2`)
	require.NoError(t, err)
	assert.Equal(t, expr.Format(b), expr.Format(a))
}

func TestParse_FieldEscape(t *testing.T) {
	e, err := expr.Parse(`[Total ]] Due] > 0`)
	require.NoError(t, err)
	cmp := e.(*expr.Binary)
	assert.Equal(t, "Total ] Due", cmp.Left.(*expr.FieldRef).Name)
}

func TestParse_CallAndLiterals(t *testing.T) {
	e, err := expr.Parse(`IIF(ISNULL([Qty]), 0, [Qty])`)
	require.NoError(t, err)

	call := e.(*expr.Call)
	assert.Equal(t, "IIF", call.Name)
	require.Len(t, call.Args, 3)
	inner := call.Args[0].(*expr.Call)
	assert.Equal(t, "ISNULL", inner.Name)
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		``,
		`[A] >`,
		`Amount > 3`, // bare identifier needs brackets
		`([A] = 1`,
		`MAX([A], )`,
		`"unterminated`,
	}
	for _, src := range cases {
		_, err := expr.Parse(src)
		assert.Error(t, err, "source %q", src)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	e, err := expr.Parse(`IIF([A] > 1 AND NOT [B], "yes", LOWERCASE([C]))`)
	require.NoError(t, err)
	assert.Equal(t, `IIF([A] > 1 AND NOT [B], "yes", LOWERCASE([C]))`, expr.Format(e))
}
