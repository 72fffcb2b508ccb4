package parser

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayhemheroes/mlatu/ast"
)

// parseSig parses a signature through a trait declaration head.
func parseSig(t *testing.T, sig string) ast.Signature {
	t.Helper()
	frag := parseFrag(t, "trait probe ("+sig+")", Options{})
	require.Len(t, frag.Declarations, 1)
	return frag.Declarations[0].Signature
}

func TestArrowSignature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	fn := parseSig(t, "int, text -> bool +fail").(ast.Function)
	assert.Len(t, fn.Ins, 2)
	assert.Len(t, fn.Outs, 1)
	require.Len(t, fn.Perms, 1)
	assert.Equal(t, ast.Unqualified{Part: "fail"}, fn.Perms[0])
}

func TestNiladicSignature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	fn := parseSig(t, "->").(ast.Function)
	assert.Empty(t, fn.Ins)
	assert.Empty(t, fn.Outs)
	assert.Empty(t, fn.Perms)
}

func TestStackPolymorphicSignature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	sf := parseSig(t, "R..., int -> S..., int, int +io").(ast.StackFunction)
	assert.Equal(t, ast.Unqualified{Part: "R"}, sf.LeftVar)
	assert.Equal(t, ast.Unqualified{Part: "S"}, sf.RightVar)
	assert.Len(t, sf.Ins, 1)
	assert.Len(t, sf.Outs, 2)
	assert.Len(t, sf.Perms, 1)
}

func TestBareRowSignature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	sf := parseSig(t, "R... -> R...").(ast.StackFunction)
	assert.Empty(t, sf.Ins)
	assert.Empty(t, sf.Outs)
}

func TestTypeApplication(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	fn := parseSig(t, "vector int -> int").(ast.Function)
	require.Len(t, fn.Ins, 1)
	app := fn.Ins[0].(ast.Application)
	assert.Equal(t, ast.Unqualified{Part: "vector"}, app.Function.(ast.Variable).Name)
	assert.Equal(t, ast.Unqualified{Part: "int"}, app.Argument.(ast.Variable).Name)
}

func TestAngleApplicationSugar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	fn := parseSig(t, "map<text, int> -> int").(ast.Function)
	require.Len(t, fn.Ins, 1)
	outer := fn.Ins[0].(ast.Application)
	assert.Equal(t, ast.Unqualified{Part: "int"}, outer.Argument.(ast.Variable).Name)
	inner := outer.Function.(ast.Application)
	assert.Equal(t, ast.Unqualified{Part: "map"}, inner.Function.(ast.Variable).Name)
	assert.Equal(t, ast.Unqualified{Part: "text"}, inner.Argument.(ast.Variable).Name)
}

func TestForQuantifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	fn := parseSig(t, "(for T. T -> T) -> int").(ast.Function)
	require.Len(t, fn.Ins, 1)
	q := fn.Ins[0].(ast.Quantified)
	require.Len(t, q.Params, 1)
	assert.Equal(t, "T", q.Params[0].Name)
	assert.Equal(t, ast.ValueKind, q.Params[0].Kind)
	assert.IsType(t, ast.Function{}, q.Body)
}

func TestAngleQuantifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	fn := parseSig(t, "(<S..., +P> S... -> S... +P) -> int").(ast.Function)
	require.Len(t, fn.Ins, 1)
	q := fn.Ins[0].(ast.Quantified)
	require.Len(t, q.Params, 2)
	assert.Equal(t, ast.StackKind, q.Params[0].Kind)
	assert.Equal(t, ast.PermissionKind, q.Params[1].Kind)
}

func TestDefinitionQuantifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "define head<T> (vector T -> T +fail) { noop }", Options{})
	idx := frag.DefinitionIndex(ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "head"})
	require.GreaterOrEqual(t, idx, 0)
	q := frag.Definitions[idx].Signature.(ast.Quantified)
	require.Len(t, q.Params, 1)
	assert.Equal(t, "T", q.Params[0].Name)
}
