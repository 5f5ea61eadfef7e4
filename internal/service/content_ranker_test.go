package service

import (
	"math"
	"testing"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
)

func TestContentScore_Formula(t *testing.T) {
	ranker := NewContentRanker()
	preferred := map[string]bool{"pointers": true}

	cases := []struct {
		res  model.Resource
		want float64
	}{
		{testResource(1, "CO1", "pointers", model.Easy, 20), 0.7*1.0 + 0.3*1.0},
		{testResource(2, "CO1", "pointers", model.Medium, 20), 0.7*1.0 + 0.3*0.7},
		{testResource(3, "CO1", "pointers", model.Hard, 20), 0.7*1.0 + 0.3*0.4},
		{testResource(4, "CO1", "arrays", model.Easy, 20), 0.7*0.3 + 0.3*1.0},
		{testResource(5, "CO1", "arrays", model.Hard, 20), 0.7*0.3 + 0.3*0.4},
	}
	for _, c := range cases {
		got := ranker.ContentScore(c.res, preferred)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("resource %d: expected %v, got %v", c.res.ID, c.want, got)
		}
		if got < 0 || got > 1 {
			t.Fatalf("content score %v out of [0,1]", got)
		}
	}
}

func TestRank_PresentationOrder(t *testing.T) {
	ranker := NewContentRanker()
	preferred := map[string]bool{"pointers": true}

	pool := []model.Resource{
		testResource(1, "CO1", "arrays", model.Easy, 10),
		testResource(2, "CO1", "pointers", model.Hard, 60),
		testResource(3, "CO1", "pointers", model.Easy, 30),
		testResource(4, "CO1", "pointers", model.Easy, 20),
	}

	ranked := ranker.Rank(pool, preferred, nil)

	// Topic matches first, then easier, then shorter.
	wantOrder := []uint{4, 3, 2, 1}
	for i, sr := range ranked {
		if sr.Resource.ID != wantOrder[i] {
			t.Fatalf("position %d: expected %d, got %d", i, wantOrder[i], sr.Resource.ID)
		}
	}
}

func TestRank_EffectivenessBreaksTies(t *testing.T) {
	ranker := NewContentRanker()
	preferred := map[string]bool{"pointers": true}

	pool := []model.Resource{
		testResource(1, "CO1", "pointers", model.Easy, 20),
		testResource(2, "CO1", "pointers", model.Easy, 20),
	}
	effectiveness := map[uint]float64{2: 4.5} // resource 1 defaults to 3.0

	ranked := ranker.Rank(pool, preferred, effectiveness)
	if ranked[0].Resource.ID != 2 {
		t.Fatalf("historically effective resource must rank first, got %d", ranked[0].Resource.ID)
	}
}

func TestResourceEffectiveness(t *testing.T) {
	eff := ResourceEffectiveness([]model.Interaction{
		{ResourceID: 1, Kind: model.Rating, Value: 4},
		{ResourceID: 1, Kind: model.Rating, Value: 2},
		{ResourceID: 2, Kind: model.Vote, Value: 1},
		{ResourceID: 2, Kind: model.Vote, Value: -1},
		{ResourceID: 3, Kind: model.Completion},
	})

	if got := eff[1]; got != 3.0 {
		t.Fatalf("resource 1: expected mean 3.0, got %v", got)
	}
	if got := eff[2]; got != 3.0 {
		t.Fatalf("resource 2: up+down votes should average to 3.0, got %v", got)
	}
	if _, ok := eff[3]; ok {
		t.Fatalf("completions must not contribute to effectiveness")
	}
}

func TestHybrid_Bounds(t *testing.T) {
	for _, cf := range []float64{0, 0.25, 0.5, 1} {
		for _, content := range []float64{0, 0.3, 0.79, 1} {
			for _, w := range []float64{0, 0.3, 0.7, 1} {
				got := Hybrid(cf, content, w)
				if got < 0 || got > 1 {
					t.Fatalf("Hybrid(%v,%v,%v)=%v out of [0,1]", cf, content, w, got)
				}
			}
		}
	}
	if got := Hybrid(1, 0, 0.7); math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("expected 0.7, got %v", got)
	}
	if got := Hybrid(0.5, 0.5, 0.7); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}
