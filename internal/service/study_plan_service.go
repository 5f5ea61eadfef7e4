package service

import (
	"go.uber.org/zap"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/internal/util"
	"github.com/trahulprabhu38/major-project-sub000/pkg/logger"
	"github.com/trahulprabhu38/major-project-sub000/pkg/monitoring"
)

// StudyPlanService spreads a recommendation set over a fixed number of
// study days with a greedy first-fit pack.
type StudyPlanService struct{}

func NewStudyPlanService() *StudyPlanService {
	return &StudyPlanService{}
}

// GeneratePlan schedules every recommended resource exactly once across at
// most studyDays days. Days fill to total/days minutes; the last day
// absorbs whatever remains so nothing is dropped.
func (s *StudyPlanService) GeneratePlan(set *model.RecommendationSet, studyDays int) (*model.StudyPlan, error) {
	if studyDays < 1 || studyDays > 30 {
		return nil, util.ErrInvalidStudyDays
	}

	plan := &model.StudyPlan{
		USN:       set.USN,
		ExamIndex: set.ExamIndex,
		Schedule:  []model.StudyDay{},
	}

	// CO顺序固定，排课结果才可复现
	var items []model.PlanItem
	for _, co := range model.CanonicalCOs {
		rec, ok := set.Recommendations[co]
		if !ok {
			continue
		}
		for _, sr := range rec.Resources {
			items = append(items, model.PlanItem{
				CO:          co,
				Resource:    sr.Resource,
				HybridScore: sr.HybridScore,
			})
		}
	}
	if len(items) == 0 {
		return plan, nil
	}

	totalMinutes := 0
	for _, it := range items {
		totalMinutes += it.Resource.EstimatedTimeMin
	}
	maxDailyMinutes := totalMinutes / studyDays
	if maxDailyMinutes < 1 {
		maxDailyMinutes = 1
	}

	day := model.StudyDay{Day: 1}
	for _, it := range items {
		lastDay := day.Day == studyDays
		if !lastDay && len(day.Items) > 0 && day.TotalMinutes+it.Resource.EstimatedTimeMin > maxDailyMinutes {
			plan.Schedule = append(plan.Schedule, day)
			day = model.StudyDay{Day: day.Day + 1}
		}
		day.Items = append(day.Items, it)
		day.TotalMinutes += it.Resource.EstimatedTimeMin
	}
	plan.Schedule = append(plan.Schedule, day)

	for i := range plan.Schedule {
		plan.Schedule[i].FocusCOs = focusCOs(plan.Schedule[i].Items)
	}

	plan.TotalHours = float64(totalMinutes) / 60
	plan.HoursPerDayNeeded = plan.TotalHours / float64(studyDays)

	logger.Log.Info("study plan generated",
		zap.String("usn", set.USN),
		zap.Int("days", len(plan.Schedule)),
		zap.Int("resources", len(items)))
	monitoring.StudyPlansGenerated.Inc()
	return plan, nil
}

// focusCOs lists the distinct COs a day touches, in canonical order.
func focusCOs(items []model.PlanItem) []string {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		seen[it.CO] = true
	}
	var out []string
	for _, co := range model.CanonicalCOs {
		if seen[co] {
			out = append(out, co)
		}
	}
	return out
}
