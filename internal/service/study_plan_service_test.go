package service

import (
	"testing"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/internal/util"
)

func planInput(minutes ...int) *model.RecommendationSet {
	set := &model.RecommendationSet{
		USN:             "1XX22CS010",
		ExamIndex:       1,
		Recommendations: map[string]model.CORecommendation{},
	}
	resources := make([]model.ScoredResource, len(minutes))
	for i, m := range minutes {
		resources[i] = model.ScoredResource{
			Resource:    testResource(uint(i+1), "CO1", "pointers", model.Easy, m),
			HybridScore: 0.5,
		}
	}
	set.Recommendations["CO1"] = model.CORecommendation{CO: "CO1", Resources: resources}
	return set
}

func TestGeneratePlan_MinutesConserved(t *testing.T) {
	svc := NewStudyPlanService()
	set := planInput(30, 45, 20, 60, 15, 90, 10)

	plan, err := svc.GeneratePlan(set, 3)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	scheduled := 0
	count := 0
	for _, day := range plan.Schedule {
		dayTotal := 0
		for _, item := range day.Items {
			dayTotal += item.Resource.EstimatedTimeMin
			count++
		}
		if dayTotal != day.TotalMinutes {
			t.Fatalf("day %d: TotalMinutes %d, items sum to %d", day.Day, day.TotalMinutes, dayTotal)
		}
		scheduled += dayTotal
	}

	if scheduled != 270 {
		t.Fatalf("minutes not conserved: scheduled %d, input 270", scheduled)
	}
	if count != 7 {
		t.Fatalf("every resource must appear exactly once, scheduled %d of 7", count)
	}
}

func TestGeneratePlan_DaysBounded(t *testing.T) {
	svc := NewStudyPlanService()

	for _, days := range []int{1, 2, 5, 30} {
		plan, err := svc.GeneratePlan(planInput(30, 45, 20, 60, 15), days)
		if err != nil {
			t.Fatalf("GeneratePlan(%d days): %v", days, err)
		}
		if len(plan.Schedule) > days {
			t.Fatalf("schedule has %d days, budget was %d", len(plan.Schedule), days)
		}
	}
}

func TestGeneratePlan_LastDayAbsorbs(t *testing.T) {
	svc := NewStudyPlanService()
	// Budget 2 days over 100 minutes: daily cap 50, but the tail must land
	// on day 2 regardless of overflow.
	plan, err := svc.GeneratePlan(planInput(40, 40, 10, 10), 2)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(plan.Schedule) > 2 {
		t.Fatalf("last day must absorb leftovers, got %d days", len(plan.Schedule))
	}
	total := 0
	for _, day := range plan.Schedule {
		total += day.TotalMinutes
	}
	if total != 100 {
		t.Fatalf("minutes not conserved: %d", total)
	}
}

func TestGeneratePlan_InvalidDays(t *testing.T) {
	svc := NewStudyPlanService()
	for _, days := range []int{0, -1, 31} {
		if _, err := svc.GeneratePlan(planInput(30), days); err != util.ErrInvalidStudyDays {
			t.Fatalf("days=%d: expected ErrInvalidStudyDays, got %v", days, err)
		}
	}
}

func TestGeneratePlan_EmptySet(t *testing.T) {
	svc := NewStudyPlanService()
	set := &model.RecommendationSet{
		USN:             "x",
		ExamIndex:       1,
		Recommendations: map[string]model.CORecommendation{},
	}
	plan, err := svc.GeneratePlan(set, 7)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(plan.Schedule) != 0 {
		t.Fatalf("empty input must yield an empty schedule, got %d days", len(plan.Schedule))
	}
}

func TestGeneratePlan_HoursComputed(t *testing.T) {
	svc := NewStudyPlanService()
	plan, err := svc.GeneratePlan(planInput(60, 60), 2)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if plan.TotalHours != 2.0 {
		t.Fatalf("TotalHours: expected 2.0, got %v", plan.TotalHours)
	}
	if plan.HoursPerDayNeeded != 1.0 {
		t.Fatalf("HoursPerDayNeeded: expected 1.0, got %v", plan.HoursPerDayNeeded)
	}
}
