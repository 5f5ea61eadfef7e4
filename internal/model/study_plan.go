package model

// PlanItem is one scheduled resource inside a study day.
// swagger:model PlanItem
type PlanItem struct {
	CO          string   `json:"co"`
	Resource    Resource `json:"resource"`
	HybridScore float64  `json:"hybridScore"`
}

// StudyDay is one day of the plan with its packed resources.
// swagger:model StudyDay
type StudyDay struct {
	Day          int        `json:"day"`
	FocusCOs     []string   `json:"focusCos"`
	TotalMinutes int        `json:"totalMinutes"`
	Items        []PlanItem `json:"items"`
}

// StudyPlan packs a recommendation set into at most the requested number of
// days. Every recommended resource appears in exactly one day.
// swagger:model StudyPlan
type StudyPlan struct {
	USN               string     `json:"usn"`
	ExamIndex         int        `json:"examIndex"`
	HoursPerDayNeeded float64    `json:"hoursPerDayNeeded"`
	TotalHours        float64    `json:"totalHours"`
	Schedule          []StudyDay `json:"schedule"`
}
