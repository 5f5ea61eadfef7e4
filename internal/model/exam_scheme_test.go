package model

import (
	"reflect"
	"testing"
)

func TestSchemeFor(t *testing.T) {
	for _, exam := range []int{1, 2, 3} {
		scheme, ok := SchemeFor(exam)
		if !ok {
			t.Fatalf("exam %d must have a scheme", exam)
		}
		if !reflect.DeepEqual(scheme.Compulsory, []int{1, 2}) {
			t.Fatalf("exam %d: unexpected compulsory set %v", exam, scheme.Compulsory)
		}
		if len(scheme.ORPairs) != 3 {
			t.Fatalf("exam %d: expected 3 OR pairs, got %d", exam, len(scheme.ORPairs))
		}
		if got := scheme.Questions(); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5, 6, 7, 8}) {
			t.Fatalf("exam %d: unexpected token list %v", exam, got)
		}
	}

	if _, ok := SchemeFor(4); ok {
		t.Fatalf("exam 4 must have no scheme")
	}
}

func TestCOIndex(t *testing.T) {
	for i, co := range CanonicalCOs {
		if got := COIndex(co); got != i {
			t.Fatalf("%s: expected %d, got %d", co, i, got)
		}
	}
	if COIndex("CO9") != -1 {
		t.Fatalf("unknown CO must map to -1")
	}
}

func TestMarksRowEffectiveScore(t *testing.T) {
	v1, v2 := 3.0, 7.0
	row := &MarksRow{Parts: map[int][]*float64{
		1: {&v1, &v2},
		2: {nil, nil},
	}}

	if got, ok := row.EffectiveScore(1); !ok || got != 7.0 {
		t.Fatalf("expected max 7.0, got %v (ok=%v)", got, ok)
	}
	if _, ok := row.EffectiveScore(2); ok {
		t.Fatalf("all-NULL question must report missing")
	}
	if _, ok := row.EffectiveScore(3); ok {
		t.Fatalf("absent question must report missing")
	}
	if !row.HasEntry(2) || row.HasEntry(3) {
		t.Fatalf("HasEntry must track sub-part presence, not validity")
	}
}

func TestInteractionNormalizedScore(t *testing.T) {
	cases := []struct {
		in   Interaction
		want float64
	}{
		{Interaction{Kind: Vote, Value: 1}, 1.0},
		{Interaction{Kind: Vote, Value: -1}, 0.0},
		{Interaction{Kind: Rating, Value: 1}, 0.0},
		{Interaction{Kind: Rating, Value: 3}, 0.5},
		{Interaction{Kind: Rating, Value: 5}, 1.0},
		{Interaction{Kind: Completion}, 0.8},
	}
	for _, c := range cases {
		if got := c.in.NormalizedScore(); got != c.want {
			t.Fatalf("%s value %v: expected %v, got %v", c.in.Kind, c.in.Value, c.want, got)
		}
	}
}
