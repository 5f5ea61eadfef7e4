package service

import (
	"math"
	"sort"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/pkg/logger"
	"github.com/trahulprabhu38/major-project-sub000/pkg/monitoring"

	"go.uber.org/zap"
)

// Degraded-mode reasons reported on per-CO recommendation lists and counted
// in the fallback metric.
const (
	FallbackNoInteractions    = "no interaction history"
	FallbackNoSimilarStudents = "no similar students"
	FallbackEmptyCOPool       = "no rated resources for outcome"
	FallbackCFDisabled        = "collaborative filtering disabled"
)

// NeutralCFScore is assigned when no interaction data backs a resource.
const NeutralCFScore = 0.5

// InteractionSource is the injected read side of the append-only
// interaction log. Keeping it an interface keeps the recommender free of
// storage details and testable with in-memory doubles.
type InteractionSource interface {
	LoadInteractions() ([]model.Interaction, error)
}

// AggregatedInteraction is one student's averaged normalized score for one
// resource.
type AggregatedInteraction struct {
	USN        string
	ResourceID uint
	Score      float64
	Count      int
}

// CollaborativeService ranks each weak CO's resources by what similar
// students found useful, degrading to difficulty-ordered neutral scores
// when the log is too sparse to say anything.
type CollaborativeService struct {
	Source        InteractionSource
	NeighborCount int
}

func NewCollaborativeService(source InteractionSource, neighborCount int) *CollaborativeService {
	if neighborCount <= 0 {
		neighborCount = 10
	}
	return &CollaborativeService{Source: source, NeighborCount: neighborCount}
}

// LoadAggregated reads the log and collapses repeat interactions into one
// normalized score per (student, resource).
func (s *CollaborativeService) LoadAggregated() ([]AggregatedInteraction, error) {
	interactions, err := s.Source.LoadInteractions()
	if err != nil {
		return nil, err
	}
	return aggregateInteractions(interactions), nil
}

func aggregateInteractions(interactions []model.Interaction) []AggregatedInteraction {
	type key struct {
		usn        string
		resourceID uint
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)
	order := make([]key, 0)

	for i := range interactions {
		k := key{interactions[i].USN, interactions[i].ResourceID}
		if counts[k] == 0 {
			order = append(order, k)
		}
		sums[k] += interactions[i].NormalizedScore()
		counts[k]++
	}

	out := make([]AggregatedInteraction, 0, len(order))
	for _, k := range order {
		out = append(out, AggregatedInteraction{
			USN:        k.usn,
			ResourceID: k.resourceID,
			Score:      sums[k] / float64(counts[k]),
			Count:      counts[k],
		})
	}
	return out
}

// Recommend produces the CF-scored candidate list per CO in coMap.
// ContentScore and HybridScore are left for the orchestrator to fill.
func (s *CollaborativeService) Recommend(
	targetUSN string,
	targetProfile []float64,
	examIndex int,
	coMap map[string][]int,
	catalog []model.Resource,
	topK int,
	predictor RatingPredictor,
) (map[string]model.CORecommendation, error) {
	rows, err := s.LoadAggregated()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		logger.Log.Warn("interaction log empty, using content-only fallback")
		monitoring.FallbackActivations.WithLabelValues("no_interactions").Inc()
		return fallbackAll(coMap, catalog, topK, FallbackNoInteractions), nil
	}

	resourceByID := make(map[uint]model.Resource, len(catalog))
	for _, r := range catalog {
		resourceByID[r.ID] = r
	}

	neighbors := s.selectNeighbors(targetProfile, examIndex, rows, resourceByID)
	if len(neighbors) == 0 {
		logger.Log.Warn("no students with positive profile similarity",
			zap.Int("examIndex", examIndex))
		monitoring.FallbackActivations.WithLabelValues("no_similar_students").Inc()
		return fallbackAll(coMap, catalog, topK, FallbackNoSimilarStudents), nil
	}

	neighborSet := make(map[string]bool, len(neighbors))
	for _, n := range neighbors {
		neighborSet[n.usn] = true
	}

	// 邻居评分汇总：每个资源的平均分和评分数
	ratingSums := make(map[uint]float64)
	ratingCounts := make(map[uint]int)
	for _, row := range rows {
		if !neighborSet[row.USN] {
			continue
		}
		ratingSums[row.ResourceID] += row.Score
		ratingCounts[row.ResourceID]++
	}

	// 编排层没有传学习模型时退回邻居平均
	average := &NeighborAverage{Sums: ratingSums, Counts: ratingCounts}
	if predictor == nil {
		predictor = average
	}

	// 目标学生自己的交互总数，作为预测特征与训练时保持一致
	targetCount := 0
	for _, row := range rows {
		if row.USN == targetUSN {
			targetCount += row.Count
		}
	}

	out := make(map[string]model.CORecommendation, len(coMap))
	for co := range coMap {
		pool := resourcesForCO(catalog, co)

		var candidates []model.ScoredResource
		for _, res := range pool {
			n := ratingCounts[res.ID]
			if n == 0 {
				continue
			}
			score, ok := predictor.Predict(featuresFor(res, rows, targetCount))
			if !ok {
				score, _ = average.Predict(featuresFor(res, rows, targetCount))
			}
			candidates = append(candidates, model.ScoredResource{
				Resource:   res,
				CFScore:    clamp01(score),
				NumRatings: n,
			})
		}

		if len(candidates) == 0 {
			monitoring.FallbackActivations.WithLabelValues("empty_co_pool").Inc()
			out[co] = fallbackForCO(co, pool, topK, FallbackEmptyCOPool)
			continue
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].CFScore != candidates[j].CFScore {
				return candidates[i].CFScore > candidates[j].CFScore
			}
			if candidates[i].NumRatings != candidates[j].NumRatings {
				return candidates[i].NumRatings > candidates[j].NumRatings
			}
			return candidates[i].Resource.ID < candidates[j].Resource.ID
		})

		if len(candidates) > topK {
			candidates = candidates[:topK]
		}
		out[co] = model.CORecommendation{CO: co, Resources: candidates}
	}

	return out, nil
}

type neighbor struct {
	usn        string
	similarity float64
}

// selectNeighbors approximates every logged student's skill-gap profile
// from the CO distribution of the resources they touched, then keeps the
// top-K by cosine similarity to the target. Proxy profiles, not ground
// truth: the log is the only thing we know about other students.
func (s *CollaborativeService) selectNeighbors(
	targetProfile []float64,
	examIndex int,
	rows []AggregatedInteraction,
	resourceByID map[uint]model.Resource,
) []neighbor {
	dim := len(model.CanonicalCOs) + 1

	profiles := make(map[string][]float64)
	for _, row := range rows {
		res, ok := resourceByID[row.ResourceID]
		if !ok {
			continue
		}
		idx := model.COIndex(res.CO)
		if idx < 0 {
			continue
		}
		p, ok := profiles[row.USN]
		if !ok {
			p = make([]float64, dim)
			p[dim-1] = float64(examIndex)
			profiles[row.USN] = p
		}
		p[idx]++
	}

	candidates := make([]neighbor, 0, len(profiles))
	for usn, p := range profiles {
		sim := cosineSimilarity(targetProfile, p)
		if sim > 0 {
			candidates = append(candidates, neighbor{usn: usn, similarity: sim})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].similarity != candidates[j].similarity {
			return candidates[i].similarity > candidates[j].similarity
		}
		return candidates[i].usn < candidates[j].usn
	})

	k := s.NeighborCount
	if len(candidates) < k {
		k = len(candidates)
	}
	return candidates[:k]
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// fallbackAll applies the no-data ranking to every CO: full pool ordered by
// ascending difficulty with a neutral score.
func fallbackAll(coMap map[string][]int, catalog []model.Resource, topK int, reason string) map[string]model.CORecommendation {
	out := make(map[string]model.CORecommendation, len(coMap))
	for co := range coMap {
		out[co] = fallbackForCO(co, resourcesForCO(catalog, co), topK, reason)
	}
	return out
}

func fallbackForCO(co string, pool []model.Resource, topK int, reason string) model.CORecommendation {
	sorted := make([]model.Resource, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Difficulty.Rank() != sorted[j].Difficulty.Rank() {
			return sorted[i].Difficulty.Rank() < sorted[j].Difficulty.Rank()
		}
		if sorted[i].EstimatedTimeMin != sorted[j].EstimatedTimeMin {
			return sorted[i].EstimatedTimeMin < sorted[j].EstimatedTimeMin
		}
		return sorted[i].ID < sorted[j].ID
	})

	if len(sorted) > topK {
		sorted = sorted[:topK]
	}

	resources := make([]model.ScoredResource, len(sorted))
	for i, res := range sorted {
		resources[i] = model.ScoredResource{
			Resource:     res,
			CFScore:      NeutralCFScore,
			NumRatings:   0,
			UsedFallback: true,
		}
	}
	return model.CORecommendation{CO: co, FallbackReason: reason, Resources: resources}
}

func resourcesForCO(catalog []model.Resource, co string) []model.Resource {
	var pool []model.Resource
	for _, r := range catalog {
		if r.CO == co {
			pool = append(pool, r)
		}
	}
	return pool
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
