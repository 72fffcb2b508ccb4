package ast

import (
	"reflect"
	"testing"
)

func TestComposeAllRoundTrip(t *testing.T) {
	terms := []Term{
		Push{Value: IntegerValue{Value: 1}},
		Push{Value: IntegerValue{Value: 2}},
		Word{Name: Unqualified{Part: "+"}},
	}
	composed := ComposeAll(terms[0].TermOrigin(), terms)
	flat := Decompose(composed)
	if len(flat) != len(terms) {
		t.Fatalf("expected %d terms, got %d", len(terms), len(flat))
	}
	for i := range terms {
		if !reflect.DeepEqual(flat[i], terms[i]) {
			t.Errorf("term %d changed: %v != %v", i, flat[i], terms[i])
		}
	}
}

func TestComposeAllEmpty(t *testing.T) {
	if _, ok := ComposeAll(Push{}.TermOrigin(), nil).(Identity); !ok {
		t.Errorf("expected Identity for an empty composition")
	}
}

func TestDecomposeDropsIdentity(t *testing.T) {
	composed := Compose{
		Left:  Identity{},
		Right: Compose{Left: Word{Name: Unqualified{Part: "dup"}}, Right: Identity{}},
	}
	flat := Decompose(composed)
	if len(flat) != 1 {
		t.Fatalf("expected 1 term, got %d", len(flat))
	}
}

func TestQualifierAppendCopies(t *testing.T) {
	base := Qualifier{Root: Absolute, Parts: []string{"a"}}
	ext := base.Append("b")
	if len(base.Parts) != 1 {
		t.Errorf("Append mutated the receiver: %v", base)
	}
	if len(ext.Parts) != 2 || ext.Parts[1] != "b" {
		t.Errorf("unexpected extension: %v", ext)
	}
}

func TestQualifyIn(t *testing.T) {
	ambient := Qualifier{Root: Absolute, Parts: []string{"lib"}}
	got := QualifyIn(ambient, Unqualified{Part: "f"})
	if got.Qualifier.String() != ambient.String() || got.Part != "f" {
		t.Errorf("unexpected qualification: %v", got)
	}
	abs := Qualified{Qualifier: Qualifier{Root: Absolute, Parts: []string{"x"}}, Part: "g"}
	if !reflect.DeepEqual(QualifyIn(ambient, abs), abs) {
		t.Errorf("absolute names must pass through unchanged")
	}
	rel := Qualified{Qualifier: Qualifier{Root: Relative, Parts: []string{"y"}}, Part: "h"}
	got = QualifyIn(ambient, rel)
	if got.Qualifier.String() != "_::lib::y" {
		t.Errorf("relative names must extend the ambient path, got %v", got.Qualifier)
	}
}

func TestFragmentDefinitionIndex(t *testing.T) {
	frag := &Fragment{Definitions: []Definition{
		{Name: Qualified{Qualifier: GlobalVocabulary, Part: "f"}},
		{Name: Qualified{Qualifier: Qualifier{Root: Absolute, Parts: []string{"a"}}, Part: "f"}},
	}}
	if idx := frag.DefinitionIndex(Qualified{Qualifier: GlobalVocabulary, Part: "f"}); idx != 0 {
		t.Errorf("expected index 0, got %d", idx)
	}
	q := Qualified{Qualifier: Qualifier{Root: Absolute, Parts: []string{"a"}}, Part: "f"}
	if idx := frag.DefinitionIndex(q); idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if idx := frag.DefinitionIndex(Qualified{Qualifier: GlobalVocabulary, Part: "g"}); idx != -1 {
		t.Errorf("expected -1 for a missing name, got %d", idx)
	}
}
