package service

import (
	"sort"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
)

// Content scoring weights and difficulty values. Topic relevance dominates;
// easier resources score higher because remediation starts from the basics.
const (
	topicWeight      = 0.7
	difficultyWeight = 0.3

	topicMatchScore = 1.0
	topicMissScore  = 0.3

	// 历史效果信号缺失时的中性值（1-5分制）
	NeutralEffectiveness = 3.0
)

func difficultyScore(d model.Difficulty) float64 {
	switch d {
	case model.Easy:
		return 1.0
	case model.Medium:
		return 0.7
	case model.Hard:
		return 0.4
	}
	return 0.4
}

// ContentRanker scores a CO's resource pool on topic relevance and
// difficulty, independent of any interaction history.
type ContentRanker struct{}

func NewContentRanker() *ContentRanker {
	return &ContentRanker{}
}

// ContentScore is 0.7*topicMatch + 0.3*difficultyScore.
func (r *ContentRanker) ContentScore(res model.Resource, preferredTopics map[string]bool) float64 {
	match := topicMissScore
	if preferredTopics[res.Topic] {
		match = topicMatchScore
	}
	return topicWeight*match + difficultyWeight*difficultyScore(res.Difficulty)
}

// Rank orders a pool for presentation: topic matches first, then easier
// before harder, shorter before longer, historically effective before
// unknown.
func (r *ContentRanker) Rank(pool []model.Resource, preferredTopics map[string]bool, effectiveness map[uint]float64) []model.ScoredResource {
	scored := make([]model.ScoredResource, len(pool))
	for i, res := range pool {
		scored[i] = model.ScoredResource{
			Resource:     res,
			ContentScore: r.ContentScore(res, preferredTopics),
		}
	}

	eff := func(id uint) float64 {
		if v, ok := effectiveness[id]; ok {
			return v
		}
		return NeutralEffectiveness
	}
	matches := func(res model.Resource) bool {
		return preferredTopics[res.Topic]
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i].Resource, scored[j].Resource
		if matches(a) != matches(b) {
			return matches(a)
		}
		if a.Difficulty.Rank() != b.Difficulty.Rank() {
			return a.Difficulty.Rank() < b.Difficulty.Rank()
		}
		if a.EstimatedTimeMin != b.EstimatedTimeMin {
			return a.EstimatedTimeMin < b.EstimatedTimeMin
		}
		if eff(a.ID) != eff(b.ID) {
			return eff(a.ID) > eff(b.ID)
		}
		return a.ID < b.ID
	})

	return scored
}

// ResourceEffectiveness derives the optional historical signal from the raw
// log: mean of ratings (1–5) and mapped votes (up→5, down→1) per resource.
// Completions carry no effectiveness information.
func ResourceEffectiveness(interactions []model.Interaction) map[uint]float64 {
	sums := make(map[uint]float64)
	counts := make(map[uint]int)
	for i := range interactions {
		var v float64
		switch interactions[i].Kind {
		case model.Rating:
			v = interactions[i].Value
		case model.Vote:
			if interactions[i].Value > 0 {
				v = 5
			} else {
				v = 1
			}
		default:
			continue
		}
		sums[interactions[i].ResourceID] += v
		counts[interactions[i].ResourceID]++
	}

	out := make(map[uint]float64, len(sums))
	for id, sum := range sums {
		out[id] = sum / float64(counts[id])
	}
	return out
}
