package service

import (
	"context"
	"errors"
	"testing"

	"github.com/trahulprabhu38/major-project-sub000/internal/config"
	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/internal/util"
)

type fakeCatalog struct {
	resources []model.Resource
}

func (f *fakeCatalog) ListAll() ([]model.Resource, error) {
	return f.resources, nil
}

func testRecommenderConfig() *config.RecommenderConfig {
	cfg := &config.RecommenderConfig{}
	cfg.ApplyDefaults()
	return cfg
}

func floatPtr(v float64) *float64 { return &v }

func newTestRecommender(marks *fakeMarks, interactions []model.Interaction) *RecommenderService {
	performance := NewPerformanceService(marks, defaultMappings(), nil)
	collaborative := NewCollaborativeService(&fakeInteractions{interactions: interactions}, 10)
	return NewRecommenderService(
		performance,
		collaborative,
		NewContentRanker(),
		&fakeCatalog{resources: testCatalog()},
		nil,
		testRecommenderConfig(),
	)
}

func weakStudentMarks() *fakeMarks {
	return &fakeMarks{rows: map[string]*model.MarksRow{
		"1XX22CS010": marksRow("1XX22CS010", 1, map[int][]*float64{
			1: {score(2)},
			2: {score(8)},
			3: {score(1)},
			4: {score(2)},
		}),
	}}
}

func TestRecommend_ValidationRejectsOutOfRange(t *testing.T) {
	svc := newTestRecommender(weakStudentMarks(), nil)
	ctx := context.Background()

	cases := []struct {
		req  RecommendRequest
		want error
	}{
		{RecommendRequest{USN: "x", ExamIndex: 0}, util.ErrInvalidExamIndex},
		{RecommendRequest{USN: "x", ExamIndex: 4}, util.ErrInvalidExamIndex},
		{RecommendRequest{USN: "x", ExamIndex: 1, Threshold: 11}, util.ErrInvalidThreshold},
		{RecommendRequest{USN: "x", ExamIndex: 1, Threshold: 0.5}, util.ErrInvalidThreshold},
		{RecommendRequest{USN: "x", ExamIndex: 1, TopK: 21}, util.ErrInvalidTopK},
		{RecommendRequest{USN: "x", ExamIndex: 1, CFWeight: floatPtr(1.5)}, util.ErrInvalidCFWeight},
		{RecommendRequest{USN: "x", ExamIndex: 1, CFWeight: floatPtr(-0.1)}, util.ErrInvalidCFWeight},
	}
	for _, c := range cases {
		_, err := svc.Recommend(ctx, c.req)
		if !errors.Is(err, c.want) {
			t.Fatalf("req %+v: expected %v, got %v", c.req, c.want, err)
		}
	}
}

func TestRecommend_DefaultsApplied(t *testing.T) {
	svc := newTestRecommender(weakStudentMarks(), nil)

	req := RecommendRequest{USN: "1XX22CS010", ExamIndex: 1}
	if err := svc.validate(&req); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.Threshold != 5 || req.TopK != 7 || *req.CFWeight != 0.7 {
		t.Fatalf("defaults not applied: %+v", req)
	}
}

func TestRecommend_ExplicitCFWeightBoundsKept(t *testing.T) {
	svc := newTestRecommender(weakStudentMarks(), nil)

	for _, w := range []float64{0, 1} {
		req := RecommendRequest{USN: "1XX22CS010", ExamIndex: 1, CFWeight: floatPtr(w)}
		if err := svc.validate(&req); err != nil {
			t.Fatalf("cfWeight=%v: validate: %v", w, err)
		}
		if *req.CFWeight != w {
			t.Fatalf("explicit cfWeight=%v replaced with %v", w, *req.CFWeight)
		}
	}
}

func TestRecommend_ZeroCFWeightIsPureContent(t *testing.T) {
	interactions := []model.Interaction{
		{USN: "s1", ResourceID: 1, Kind: model.Rating, Value: 5},
		{USN: "s1", ResourceID: 2, Kind: model.Rating, Value: 4},
		{USN: "s2", ResourceID: 2, Kind: model.Vote, Value: 1},
		{USN: "s2", ResourceID: 4, Kind: model.Rating, Value: 5},
	}
	svc := newTestRecommender(weakStudentMarks(), interactions)

	set, err := svc.Recommend(context.Background(), RecommendRequest{
		USN:       "1XX22CS010",
		ExamIndex: 1,
		CFWeight:  floatPtr(0),
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(set.Recommendations) == 0 {
		t.Fatalf("expected recommendations for a weak student")
	}
	for co, rec := range set.Recommendations {
		for _, sr := range rec.Resources {
			if sr.HybridScore != sr.ContentScore {
				t.Fatalf("%s: cfWeight=0 must score on content alone, hybrid %v vs content %v",
					co, sr.HybridScore, sr.ContentScore)
			}
		}
	}
}

func TestRecommend_NoWeaknessesIsEmptyNotError(t *testing.T) {
	marks := &fakeMarks{rows: map[string]*model.MarksRow{
		"ace": marksRow("ace", 1, map[int][]*float64{
			1: {score(10)}, 2: {score(10)},
			3: {score(10)}, 4: {score(10)},
			5: {score(10)}, 6: {score(10)},
			7: {score(10)}, 8: {score(10)},
		}),
	}}
	svc := newTestRecommender(marks, nil)

	set, err := svc.Recommend(context.Background(), RecommendRequest{USN: "ace", ExamIndex: 1})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(set.WeakQuestions) != 0 || len(set.Recommendations) != 0 {
		t.Fatalf("strong student must get an empty set, got %+v", set)
	}
}

func TestRecommend_FullPipeline(t *testing.T) {
	interactions := []model.Interaction{
		{USN: "s1", ResourceID: 1, Kind: model.Rating, Value: 5},
		{USN: "s1", ResourceID: 2, Kind: model.Rating, Value: 4},
		{USN: "s2", ResourceID: 2, Kind: model.Vote, Value: 1},
		{USN: "s2", ResourceID: 4, Kind: model.Rating, Value: 5},
	}
	svc := newTestRecommender(weakStudentMarks(), interactions)

	set, err := svc.Recommend(context.Background(), RecommendRequest{
		USN:       "1XX22CS010",
		ExamIndex: 1,
		TopK:      2,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(set.WeakQuestions) == 0 {
		t.Fatalf("expected weak questions for a failing student")
	}
	if set.WeakQuestions[0] != "1" {
		t.Fatalf("weak question tokens must be strings, got %v", set.WeakQuestions)
	}

	for co, rec := range set.Recommendations {
		if len(rec.Resources) > 2 {
			t.Fatalf("%s: topK=2 violated with %d resources", co, len(rec.Resources))
		}
		for _, sr := range rec.Resources {
			if sr.HybridScore < 0 || sr.HybridScore > 1 {
				t.Fatalf("%s: hybrid score %v out of [0,1]", co, sr.HybridScore)
			}
			if sr.Resource.CO != co {
				t.Fatalf("resource %d from CO %s listed under %s", sr.Resource.ID, sr.Resource.CO, co)
			}
		}
	}
}

func TestRecommend_CFDisabled(t *testing.T) {
	interactions := []model.Interaction{
		{USN: "s1", ResourceID: 1, Kind: model.Rating, Value: 5},
	}
	svc := newTestRecommender(weakStudentMarks(), interactions)

	useCF := false
	set, err := svc.Recommend(context.Background(), RecommendRequest{
		USN:       "1XX22CS010",
		ExamIndex: 1,
		UseCF:     &useCF,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	for co, rec := range set.Recommendations {
		if rec.FallbackReason != FallbackCFDisabled {
			t.Fatalf("%s: expected %q, got %q", co, FallbackCFDisabled, rec.FallbackReason)
		}
		for _, sr := range rec.Resources {
			if sr.CFScore != NeutralCFScore {
				t.Fatalf("%s: CF-disabled score must be neutral, got %v", co, sr.CFScore)
			}
		}
	}
}

func TestRecommend_CFDisabledKeepsTopicMatchesFirst(t *testing.T) {
	// Weak only on question 1 (topic "pointers"); the OR pair (3,4) is
	// satisfied so CO2 stays out of the picture.
	marks := &fakeMarks{rows: map[string]*model.MarksRow{
		"1XX22CS011": marksRow("1XX22CS011", 1, map[int][]*float64{
			1: {score(2)},
			2: {score(8)},
			3: {score(6)},
			4: {score(1)},
		}),
	}}
	svc := newTestRecommender(marks, nil)

	useCF := false
	set, err := svc.Recommend(context.Background(), RecommendRequest{
		USN:       "1XX22CS011",
		ExamIndex: 1,
		TopK:      2,
		UseCF:     &useCF,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	rec, ok := set.Recommendations["CO1"]
	if !ok {
		t.Fatalf("expected a CO1 list, got %+v", set.Recommendations)
	}
	if rec.FallbackReason != FallbackCFDisabled {
		t.Fatalf("expected %q, got %q", FallbackCFDisabled, rec.FallbackReason)
	}
	// Ranker order: pointers easy (2), pointers hard (1); the off-topic
	// arrays resource (3) must not displace a topic match at topK=2.
	wantOrder := []uint{2, 1}
	if len(rec.Resources) != len(wantOrder) {
		t.Fatalf("expected %d resources, got %d", len(wantOrder), len(rec.Resources))
	}
	for i, sr := range rec.Resources {
		if sr.Resource.ID != wantOrder[i] {
			t.Fatalf("position %d: expected resource %d, got %d", i, wantOrder[i], sr.Resource.ID)
		}
	}
}

func TestRecommend_CachedAfterFirstCall(t *testing.T) {
	// Without redis the pipeline must still work and stay deterministic.
	svc := newTestRecommender(weakStudentMarks(), nil)
	req := RecommendRequest{USN: "1XX22CS010", ExamIndex: 1}

	first, err := svc.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.TotalResources() != second.TotalResources() {
		t.Fatalf("repeat calls diverged: %d vs %d", first.TotalResources(), second.TotalResources())
	}
}
