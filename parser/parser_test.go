package parser

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayhemheroes/mlatu/ast"
	"github.com/mayhemheroes/mlatu/scanner"
)

// parseFrag scans, lays out and parses one input with the given options.
func parseFrag(t *testing.T, input string, opts Options) *ast.Fragment {
	t.Helper()
	tokens, err := scanner.Scan("test", input)
	require.NoError(t, err)
	tokens, err = scanner.Layout(tokens)
	require.NoError(t, err)
	frag, err := ParseFragment(1, "test", tokens, opts)
	require.NoError(t, err)
	return frag
}

// parseErr asserts the input fails with a grammar error.
func parseErr(t *testing.T, input string) *ParseError {
	t.Helper()
	tokens, err := scanner.Scan("test", input)
	require.NoError(t, err)
	tokens, err = scanner.Layout(tokens)
	require.NoError(t, err)
	_, err = ParseFragment(1, "test", tokens, Options{})
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok, "expected a *ParseError, got %T: %v", err, err)
	return perr
}

// mainBody returns the entry-point body of a parsed fragment.
func mainBody(t *testing.T, frag *ast.Fragment) ast.Term {
	t.Helper()
	idx := frag.DefinitionIndex(ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "main"})
	require.GreaterOrEqual(t, idx, 0, "no entry definition")
	return frag.Definitions[idx].Body
}

func TestEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "", Options{})
	require.Len(t, frag.Definitions, 1)
	def := frag.Definitions[0]
	assert.True(t, def.Inferred)
	assert.IsType(t, ast.Identity{}, def.Body)
}

func TestTopLevelOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "1 2 +", Options{})
	terms := ast.Decompose(mainBody(t, frag))
	require.Len(t, terms, 3)
	assert.Equal(t, int64(1), terms[0].(ast.Push).Value.(ast.IntegerValue).Value)
	assert.Equal(t, int64(2), terms[1].(ast.Push).Value.(ast.IntegerValue).Value)
	plus := terms[2].(ast.Word)
	assert.Equal(t, ast.Infix, plus.Fixity)
	assert.Equal(t, ast.Unqualified{Part: "+"}, plus.Name)
}

func TestDefinition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, `define greet (-> +io) { "hi" say }`, Options{})
	idx := frag.DefinitionIndex(ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "greet"})
	require.GreaterOrEqual(t, idx, 0)
	def := frag.Definitions[idx]
	assert.Equal(t, ast.WordDef, def.Category)
	assert.Equal(t, ast.DenyMerge, def.Merge)
	assert.False(t, def.Inferred)
	sig := def.Signature.(ast.Function)
	require.Len(t, sig.Perms, 1)
	assert.Equal(t, ast.Unqualified{Part: "io"}, sig.Perms[0])
	terms := ast.Decompose(def.Body)
	require.Len(t, terms, 2)
	assert.Equal(t, "hi", terms[0].(ast.Push).Value.(ast.TextValue).Text)
}

func TestInstanceMergesByComposition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "instance size (int -> int) { drop 1 }", Options{})
	idx := frag.DefinitionIndex(ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "size"})
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, ast.InstanceDef, frag.Definitions[idx].Category)
	assert.Equal(t, ast.ComposeMerge, frag.Definitions[idx].Merge)
}

func TestTraitDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "trait size<T> (T -> int)", Options{})
	require.Len(t, frag.Declarations, 1)
	decl := frag.Declarations[0]
	assert.Equal(t, ast.TraitDecl, decl.Category)
	assert.Equal(t, ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "size"}, decl.Name)
	q := decl.Signature.(ast.Quantified)
	require.Len(t, q.Params, 1)
	assert.Equal(t, "T", q.Params[0].Name)
	assert.Equal(t, ast.ValueKind, q.Params[0].Kind)
}

func TestVocabBlockScope(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "vocab a { define b (->) {} }\ndefine g (->) {}", Options{})
	bIdx := frag.DefinitionIndex(ast.Qualified{
		Qualifier: ast.Qualifier{Root: ast.Absolute, Parts: []string{"a"}},
		Part:      "b",
	})
	assert.GreaterOrEqual(t, bIdx, 0, "b should live in vocabulary a")
	gIdx := frag.DefinitionIndex(ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "g"})
	assert.GreaterOrEqual(t, gIdx, 0, "g should be back at the root after the block")
}

func TestVocabTerminatorForm(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "vocab a;\ndefine b (->) {}\ndefine c (->) {}", Options{})
	q := ast.Qualifier{Root: ast.Absolute, Parts: []string{"a"}}
	assert.GreaterOrEqual(t, frag.DefinitionIndex(ast.Qualified{Qualifier: q, Part: "b"}), 0)
	assert.GreaterOrEqual(t, frag.DefinitionIndex(ast.Qualified{Qualifier: q, Part: "c"}), 0)
}

func TestNestedVocabs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "vocab a { vocab b { define c (->) {} } }", Options{})
	q := ast.Qualifier{Root: ast.Absolute, Parts: []string{"a", "b"}}
	assert.GreaterOrEqual(t, frag.DefinitionIndex(ast.Qualified{Qualifier: q, Part: "c"}), 0)
}

func TestVocabScopeRestoredAfterError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	// the unmatched brace fails the parse, but deterministically
	perr := parseErr(t, "vocab a { define b (->) {}")
	assert.NotEmpty(t, perr.Expected)
}

func TestTopLevelBindingSplice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "1 -> x;\nx say", Options{})
	body := mainBody(t, frag).(ast.Compose)
	lam := body.Right.(ast.Lambda)
	assert.Equal(t, "x", lam.Name)
	inner := ast.Decompose(lam.Body)
	require.Len(t, inner, 2)
	assert.Equal(t, ast.Unqualified{Part: "x"}, inner[0].(ast.Word).Name)
	assert.Equal(t, ast.Unqualified{Part: "say"}, inner[1].(ast.Word).Name)
}

func TestSpliceThroughBindingChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	// both bindings stay in scope for the last statement
	frag := parseFrag(t, "1 -> x;\n2 -> y;\nx y +", Options{})
	body := mainBody(t, frag).(ast.Compose)
	outer := body.Right.(ast.Lambda)
	assert.Equal(t, "x", outer.Name)
	innerCompose := outer.Body.(ast.Compose)
	innerLam := innerCompose.Right.(ast.Lambda)
	assert.Equal(t, "y", innerLam.Name)
	terms := ast.Decompose(innerLam.Body)
	require.Len(t, terms, 3)
}

func TestExplicitMainIsExtended(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "define main (->) { 1 }\n2", Options{})
	terms := ast.Decompose(mainBody(t, frag))
	require.Len(t, terms, 2)
	assert.Equal(t, int64(1), terms[0].(ast.Push).Value.(ast.IntegerValue).Value)
	assert.Equal(t, int64(2), terms[1].(ast.Push).Value.(ast.IntegerValue).Value)
}

func TestEntryOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	opts := Options{EntryName: "start", EntryPermissions: []string{"net"}}
	frag := parseFrag(t, "1", opts)
	idx := frag.DefinitionIndex(ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "start"})
	require.GreaterOrEqual(t, idx, 0)
	def := frag.Definitions[idx]
	assert.True(t, def.Inferred)
	sf := def.Signature.(ast.Quantified).Body.(ast.StackFunction)
	require.Len(t, sf.Perms, 1)
	assert.Equal(t, ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "net"}, sf.Perms[0])
}

func TestTypeDefinition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "type Optional<T> { case none case some (T) }", Options{})
	require.Len(t, frag.Types, 1)
	td := frag.Types[0]
	assert.False(t, td.Record)
	assert.Equal(t, "Optional", td.Name.Part)
	require.Len(t, td.Constructors, 2)
	assert.Equal(t, "none", td.Constructors[0].Name)
	assert.Empty(t, td.Constructors[0].Fields)
	assert.Equal(t, "some", td.Constructors[1].Name)
	require.Len(t, td.Constructors[1].Fields, 1)
}

func TestRecordAccessors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "record Pair { field first (a) field second (b) }", Options{})
	require.Len(t, frag.Types, 1)
	td := frag.Types[0]
	assert.True(t, td.Record)
	require.Len(t, td.Constructors, 1)
	ctor := td.Constructors[0]
	assert.Equal(t, "mkPair", ctor.Name)
	require.Len(t, ctor.Fields, 2)

	idx := frag.DefinitionIndex(ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "second"})
	require.GreaterOrEqual(t, idx, 0, "accessor for field 'second' missing")
	acc := frag.Definitions[idx]
	assert.Equal(t, ast.DeconstructorDef, acc.Category)
	assert.Equal(t, ast.RecordOf{Name: td.Name}, acc.Parent)
	assert.True(t, acc.Inferred)
	m := acc.Body.(ast.Match)
	require.Len(t, m.Cases, 1)
	assert.Equal(t, ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "mkPair"},
		m.Cases[0].Name)
	sig := acc.Signature.(ast.Function)
	require.Len(t, sig.Ins, 1)
	require.Len(t, sig.Outs, 1)
}

func TestMetadata(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, `about sort { docs { "sorts a vector" } }`, Options{})
	require.Len(t, frag.Metadata, 1)
	md := frag.Metadata[0]
	require.Len(t, md.Entries, 1)
	assert.Equal(t, "docs", md.Entries[0].Key)
}

func TestSynonym(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	frag := parseFrag(t, "synonym plus (+);", Options{})
	require.Len(t, frag.Synonyms, 1)
	syn := frag.Synonyms[0]
	assert.Equal(t, ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "plus"}, syn.Name)
	assert.Equal(t, ast.Unqualified{Part: "+"}, syn.Target)
}

func TestErrorReportsFurthestPoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	perr := parseErr(t, "define f (->) { 1")
	assert.NotEmpty(t, perr.Expected)
	assert.NotEmpty(t, perr.Error())
}

func TestErrorIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	first := parseErr(t, "define (")
	for i := 0; i < 5; i++ {
		again := parseErr(t, "define (")
		assert.Equal(t, first.Error(), again.Error())
	}
}

func TestDepthLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	deep := ""
	for i := 0; i < 600; i++ {
		deep += "("
	}
	parseErr(t, deep)
}

func TestParseName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	name, err := ParseName(1, "test", "a::b::c")
	require.NoError(t, err)
	assert.Equal(t, ast.Qualified{
		Qualifier: ast.Qualifier{Root: ast.Relative, Parts: []string{"a", "b"}},
		Part:      "c",
	}, name)

	name, err = ParseName(1, "test", "::sort")
	require.NoError(t, err)
	assert.Equal(t, ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "sort"}, name)

	name, err = ParseName(1, "test", "dup")
	require.NoError(t, err)
	assert.Equal(t, ast.Unqualified{Part: "dup"}, name)

	_, err = ParseName(1, "test", "a b")
	require.Error(t, err)
}

func TestParseNameAngleOperator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	// angle tokens glue onto the operator to form one identifier
	name, err := ParseName(1, "test", "<=>")
	require.NoError(t, err)
	assert.Equal(t, ast.Unqualified{Part: "<=>"}, name)
}

func TestStartLineOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	tokens, err := scanner.Scan("repl", "1")
	require.NoError(t, err)
	frag, err := ParseFragment(5, "repl", tokens, Options{})
	require.NoError(t, err)
	body := mainBody(t, frag)
	assert.Equal(t, 5, body.TermOrigin().BeginLine)
}

func TestFingerprintStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	a := parseFrag(t, "define f (->) { 1 2 + }", Options{})
	b := parseFrag(t, "define f (->) { 1 2 + }", Options{})
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	c := parseFrag(t, "define f (->) { 2 1 + }", Options{})
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestLayoutAndBracesAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlatu.parser")
	defer teardown()
	//
	braced := parseFrag(t, "define f (->) { 1 say }", Options{})
	laidOut := parseFrag(t, "define f (->):\n  1 say", Options{})
	idx := braced.DefinitionIndex(ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "f"})
	require.GreaterOrEqual(t, idx, 0)
	jdx := laidOut.DefinitionIndex(ast.Qualified{Qualifier: ast.GlobalVocabulary, Part: "f"})
	require.GreaterOrEqual(t, jdx, 0)
	assert.Equal(t,
		len(ast.Decompose(braced.Definitions[idx].Body)),
		len(ast.Decompose(laidOut.Definitions[jdx].Body)))
}
