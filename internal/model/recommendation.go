package model

// ScoredResource is one recommended resource with its sub-scores.
// UsedFallback is set when the CF score came from a degraded path instead
// of real neighbor data, so callers and tests can tell the two apart.
// swagger:model ScoredResource
type ScoredResource struct {
	Resource     Resource `json:"resource"`
	CFScore      float64  `json:"cfScore"`
	ContentScore float64  `json:"contentScore"`
	HybridScore  float64  `json:"hybridScore"`
	NumRatings   int      `json:"numRatings"`
	UsedFallback bool     `json:"usedFallback"`
}

// CORecommendation is the ordered resource list for one course outcome.
// FallbackReason is empty when collaborative filtering ran on real data.
// swagger:model CORecommendation
type CORecommendation struct {
	CO             string           `json:"co"`
	FallbackReason string           `json:"fallbackReason,omitempty"`
	Resources      []ScoredResource `json:"resources"`
}

// RecommendationSet is the full output of one recommendation request.
// Derived per request, never persisted.
// swagger:model RecommendationSet
type RecommendationSet struct {
	USN             string                      `json:"usn"`
	ExamIndex       int                         `json:"examIndex"`
	WeakQuestions   []string                    `json:"weakQuestions"`
	COMap           map[string][]string         `json:"coMap"`
	TopicMap        map[string][]string         `json:"topicMap"`
	Recommendations map[string]CORecommendation `json:"recommendations"`
}

// TotalResources counts resources across all COs, for plan sizing.
func (s *RecommendationSet) TotalResources() int {
	n := 0
	for _, rec := range s.Recommendations {
		n += len(rec.Resources)
	}
	return n
}
