package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi-parthasarathy/flowgen/pkg/expr"
)

func translate(t *testing.T, src string) (string, expr.ValueKind, []string) {
	t.Helper()
	tr, err := expr.Translate(src, "df")
	require.NoError(t, err)
	return tr.Code, tr.Kind, tr.Warnings
}

func TestTranslate_Comparison(t *testing.T) {
	code, kind, warnings := translate(t, `[Amount] > 1000`)
	assert.Equal(t, "(df['Amount'] > 1000)", code)
	assert.Equal(t, expr.KindBoolean, kind)
	assert.Empty(t, warnings)
}

func TestTranslate_BooleanLogic(t *testing.T) {
	code, _, _ := translate(t, `[Amount] > 1000 AND [Region] = "West"`)
	assert.Equal(t, "((df['Amount'] > 1000) & (df['Region'] == 'West'))", code)

	code, _, _ = translate(t, `NOT [Done]`)
	assert.Equal(t, "~(df['Done'])", code)

	code, _, _ = translate(t, `[A] = 1 OR [B] = 2`)
	assert.Equal(t, "((df['A'] == 1) | (df['B'] == 2))", code)
}

func TestTranslate_Arithmetic(t *testing.T) {
	code, kind, _ := translate(t, `[Price] * [Qty] - 5`)
	assert.Equal(t, "((df['Price'] * df['Qty']) - 5)", code)
	assert.Equal(t, expr.KindNumeric, kind)
}

func TestTranslate_StringConcat(t *testing.T) {
	code, kind, _ := translate(t, `[First] + " " + [Last]`)
	assert.Equal(t, "((df['First'] + ' ') + df['Last'])", code)
	assert.Equal(t, expr.KindString, kind)
}

func TestTranslate_Functions(t *testing.T) {
	cases := []struct {
		src, want string
		kind      expr.ValueKind
	}{
		{`ABS([X])`, "np.abs(df['X'])", expr.KindNumeric},
		{`UPPERCASE([Name])`, "(df['Name']).str.upper()", expr.KindString},
		{`CONTAINS([Name], "inc")`, "(df['Name']).str.contains('inc', regex=False)", expr.KindBoolean},
		{`ISNULL([Qty])`, "(df['Qty']).isna()", expr.KindBoolean},
		{`IIF([A] > 1, "hi", "lo")`, "np.where((df['A'] > 1), 'hi', 'lo')", expr.KindUnknown},
		{`DATETIMEYEAR([When])`, "(df['When']).dt.year", expr.KindNumeric},
		{`SUBSTRING([S], 0, 3)`, "(df['S']).str.slice(0, (0) + (3))", expr.KindString},
	}
	for _, c := range cases {
		code, kind, warnings := translate(t, c.src)
		assert.Equal(t, c.want, code, c.src)
		assert.Equal(t, c.kind, kind, c.src)
		assert.Empty(t, warnings, c.src)
	}
}

func TestTranslate_CaseInsensitiveFunctionNames(t *testing.T) {
	code, _, warnings := translate(t, `abs([X])`)
	assert.Equal(t, "np.abs(df['X'])", code)
	assert.Empty(t, warnings)
}

func TestTranslate_UnknownFunctionPlaceholder(t *testing.T) {
	code, kind, warnings := translate(t, `SOUNDEX([Name])`)
	assert.Equal(t, expr.UnsupportedMarker+"('SOUNDEX([Name])')", code)
	assert.Equal(t, expr.KindUnknown, kind)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "SOUNDEX")
	assert.Contains(t, warnings[0], "no translation")
}

func TestTranslate_ArityMismatchPlaceholder(t *testing.T) {
	code, _, warnings := translate(t, `MAX([A], [B], [C])`)
	assert.Equal(t, expr.UnsupportedMarker+"('MAX([A], [B], [C])')", code)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "expects 2 argument(s), got 3")
}

func TestTranslate_PlaceholderInsideLargerExpression(t *testing.T) {
	// The surrounding statement stays valid pandas even when one call
	// degrades to the placeholder.
	code, _, warnings := translate(t, `SOUNDEX([Name]) = "X123"`)
	assert.Equal(t, "("+expr.UnsupportedMarker+"('SOUNDEX([Name])') == 'X123')", code)
	assert.Len(t, warnings, 1)
}

func TestTranslate_ParseError(t *testing.T) {
	_, err := expr.Translate(`[A] >`, "df")
	require.Error(t, err)
}

func TestTranslate_PreambleNeeds(t *testing.T) {
	tr, err := expr.Translate(`ABS([X])`, "df")
	require.NoError(t, err)
	assert.True(t, tr.Numpy)
	assert.False(t, tr.Pandas)
	assert.False(t, tr.Marker)

	tr, err = expr.Translate(`TONUMBER([X])`, "df")
	require.NoError(t, err)
	assert.True(t, tr.Pandas)
	assert.False(t, tr.Numpy)

	tr, err = expr.Translate(`SOUNDEX([X])`, "df")
	require.NoError(t, err)
	assert.True(t, tr.Marker)

	tr, err = expr.Translate(`[A] > 1`, "df")
	require.NoError(t, err)
	assert.False(t, tr.Pandas)
	assert.False(t, tr.Numpy)
	assert.False(t, tr.Marker)
}

func TestPyString(t *testing.T) {
	assert.Equal(t, `'it\'s'`, expr.PyString("it's"))
	assert.Equal(t, `'a\\b'`, expr.PyString(`a\b`))
	assert.Equal(t, `'line\nnext'`, expr.PyString("line\nnext"))
}
