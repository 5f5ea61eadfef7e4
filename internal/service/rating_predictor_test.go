package service

import (
	"testing"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
)

func TestNeighborAverage_Predict(t *testing.T) {
	avg := &NeighborAverage{
		Sums:   map[uint]float64{1: 1.5},
		Counts: map[uint]int{1: 2},
	}

	got, ok := avg.Predict(PredictorFeatures{ResourceID: 1})
	if !ok || got != 0.75 {
		t.Fatalf("expected 0.75, got %v (ok=%v)", got, ok)
	}

	if _, ok := avg.Predict(PredictorFeatures{ResourceID: 9}); ok {
		t.Fatalf("unrated resource must report ok=false")
	}
}

func TestTrainRegressor_GatedBelowMinSamples(t *testing.T) {
	rows := []AggregatedInteraction{
		{USN: "s1", ResourceID: 1, Score: 0.8, Count: 1},
		{USN: "s2", ResourceID: 2, Score: 0.4, Count: 1},
	}
	if reg := TrainRegressor(rows, testCatalog(), 10); reg != nil {
		t.Fatalf("regressor must not train below the sample gate")
	}
}

func TestTrainRegressor_PredictsInBounds(t *testing.T) {
	catalog := append(testCatalog(), testResource(6, "CO3", "loops", model.Easy, 25))
	types := []model.ResourceType{model.Video, model.Article, model.PDF, model.Worksheet, model.Video, model.Article}
	for i := range catalog {
		catalog[i].Type = types[i]
	}

	// Uneven rating pattern so the design matrix stays full rank.
	pattern := map[string][]uint{
		"s1": {1, 2, 3},
		"s2": {1, 2, 6},
		"s3": {1, 4, 5},
		"s4": {2, 3, 4, 5, 6},
	}
	scores := map[string]float64{"s1": 0.9, "s2": 0.7, "s3": 0.3, "s4": 0.5}

	var rows []AggregatedInteraction
	for _, usn := range []string{"s1", "s2", "s3", "s4"} {
		for _, id := range pattern[usn] {
			rows = append(rows, AggregatedInteraction{
				USN:        usn,
				ResourceID: id,
				Score:      scores[usn],
				Count:      1,
			})
		}
	}

	reg := TrainRegressor(rows, catalog, 10)
	if reg == nil {
		t.Fatalf("regressor should train with %d samples", len(rows))
	}

	for _, res := range catalog {
		got, ok := reg.Predict(featuresFor(res, rows, 0))
		if !ok {
			t.Fatalf("trained regressor must always predict")
		}
		if got < 0 || got > 1 {
			t.Fatalf("prediction %v out of [0,1]", got)
		}
	}
}

func TestNilRegressorPredict(t *testing.T) {
	var reg *LearnedRegressor
	if _, ok := reg.Predict(PredictorFeatures{ResourceID: 1}); ok {
		t.Fatalf("nil regressor must report ok=false")
	}
}

func TestFeaturesFor_Popularity(t *testing.T) {
	rows := []AggregatedInteraction{
		{USN: "s1", ResourceID: 1},
		{USN: "s2", ResourceID: 1},
		{USN: "s1", ResourceID: 2},
	}
	res := testResource(1, "CO1", "pointers", model.Hard, 60)

	f := featuresFor(res, rows, 3)
	if f.ResourcePopularity != 2 {
		t.Fatalf("expected popularity 2, got %d", f.ResourcePopularity)
	}
	if f.Difficulty != model.Hard.Rank() {
		t.Fatalf("difficulty feature mismatch")
	}
	if f.StudentInteractions != 3 {
		t.Fatalf("student interaction count must pass through, got %d", f.StudentInteractions)
	}
}
