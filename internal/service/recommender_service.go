package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/trahulprabhu38/major-project-sub000/internal/config"
	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/internal/util"
	"github.com/trahulprabhu38/major-project-sub000/pkg/logger"
	"github.com/trahulprabhu38/major-project-sub000/pkg/monitoring"
)

// CatalogSource is the injected read side of the resource catalog.
type CatalogSource interface {
	ListAll() ([]model.Resource, error)
}

// RecommendRequest carries one recommendation call's parameters after the
// HTTP layer has bound them. Unset optional fields pick up the configured
// defaults during validation; CFWeight and UseCF are pointers because zero
// and false are valid explicit choices.
type RecommendRequest struct {
	USN       string   `json:"usn"`
	ExamIndex int      `json:"examIndex"`
	Threshold float64  `json:"threshold"`
	TopK      int      `json:"topK"`
	CFWeight  *float64 `json:"cfWeight,omitempty"`
	UseCF     *bool    `json:"useCF,omitempty"`
}

// RecommenderService orchestrates the full pipeline: weak-question
// detection, CO mapping, collaborative + content scoring, hybrid fusion.
type RecommenderService struct {
	Performance   *PerformanceService
	Collaborative *CollaborativeService
	Ranker        *ContentRanker
	Catalog       CatalogSource
	Redis         *redis.Client
	Cfg           *config.RecommenderConfig
}

func NewRecommenderService(
	performance *PerformanceService,
	collaborative *CollaborativeService,
	ranker *ContentRanker,
	catalog CatalogSource,
	rdb *redis.Client,
	cfg *config.RecommenderConfig,
) *RecommenderService {
	return &RecommenderService{
		Performance:   performance,
		Collaborative: collaborative,
		Ranker:        ranker,
		Catalog:       catalog,
		Redis:         rdb,
		Cfg:           cfg,
	}
}

// Hybrid fuses the two scores: w*cf + (1-w)*content.
func Hybrid(cfScore, contentScore, cfWeight float64) float64 {
	return cfWeight*cfScore + (1-cfWeight)*contentScore
}

// validate fills defaults for unset optional fields and rejects
// out-of-range parameters before any data access. An explicit cfWeight of
// zero is a valid pure-content weighting, not an absent value.
func (s *RecommenderService) validate(req *RecommendRequest) error {
	if req.Threshold == 0 {
		req.Threshold = float64(s.Cfg.DefaultThreshold)
	}
	if req.TopK == 0 {
		req.TopK = s.Cfg.DefaultTopK
	}
	if req.CFWeight == nil {
		w := s.Cfg.DefaultCFWeight
		req.CFWeight = &w
	}

	if req.ExamIndex < 1 || req.ExamIndex > 3 {
		return util.ErrInvalidExamIndex
	}
	if req.Threshold < 1 || req.Threshold > 10 {
		return util.ErrInvalidThreshold
	}
	if req.TopK < 1 || req.TopK > 20 {
		return util.ErrInvalidTopK
	}
	if *req.CFWeight < 0 || *req.CFWeight > 1 {
		return util.ErrInvalidCFWeight
	}
	return nil
}

func (s *RecommenderService) cacheKey(req RecommendRequest) string {
	useCF := true
	if req.UseCF != nil {
		useCF = *req.UseCF
	}
	return fmt.Sprintf("rec:%s:%d:%.1f:%d:%.2f:%t",
		req.USN, req.ExamIndex, req.Threshold, req.TopK, *req.CFWeight, useCF)
}

// Recommend runs the full pipeline for one student and exam.
func (s *RecommenderService) Recommend(ctx context.Context, req RecommendRequest) (*model.RecommendationSet, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	key := s.cacheKey(req)
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var cached model.RecommendationSet
			if json.Unmarshal([]byte(raw), &cached) == nil {
				logger.Log.Debug("recommendation cache hit", zap.String("key", key))
				return &cached, nil
			}
		}
	}

	out, err := s.recommend(req)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(out); err == nil {
			ttl := time.Duration(s.Cfg.CacheTTLSeconds) * time.Second
			if err := s.Redis.Set(ctx, key, raw, ttl).Err(); err != nil {
				logger.Log.Warn("recommendation cache write failed", zap.Error(err))
			}
		}
	}

	monitoring.RecommendationsServed.Inc()
	return out, nil
}

func (s *RecommenderService) recommend(req RecommendRequest) (*model.RecommendationSet, error) {
	out := &model.RecommendationSet{
		USN:             req.USN,
		ExamIndex:       req.ExamIndex,
		WeakQuestions:   []string{},
		COMap:           map[string][]string{},
		TopicMap:        map[string][]string{},
		Recommendations: map[string]model.CORecommendation{},
	}

	weak, err := s.Performance.DetectWeakQuestions(req.USN, req.ExamIndex, req.Threshold)
	if err != nil {
		return nil, err
	}
	if len(weak) == 0 {
		// 没有薄弱题就没有推荐，这不是错误
		logger.Log.Info("no weak questions detected",
			zap.String("usn", req.USN), zap.Int("examIndex", req.ExamIndex))
		return out, nil
	}
	out.WeakQuestions = util.IntsToStrings(weak)

	coMap, topicMap, err := s.Performance.MapQuestions(weak, req.ExamIndex)
	if err != nil {
		return nil, err
	}
	out.COMap = util.IntMapToStrings(coMap)
	out.TopicMap = util.IntMapToStrings(topicMap)
	if len(coMap) == 0 {
		return out, nil
	}

	catalog, err := s.Catalog.ListAll()
	if err != nil {
		return nil, err
	}

	preferred, err := s.Performance.PreferredTopics(weak, req.ExamIndex)
	if err != nil {
		return nil, err
	}

	interactions, err := s.Collaborative.Source.LoadInteractions()
	if err != nil {
		return nil, err
	}
	effectiveness := ResourceEffectiveness(interactions)

	useCF := true
	if req.UseCF != nil {
		useCF = *req.UseCF
	}

	var recs map[string]model.CORecommendation
	if useCF {
		profile := s.Performance.BuildProfile(coMap, req.ExamIndex)
		predictor := s.trainPredictor(interactions, catalog)
		recs, err = s.Collaborative.Recommend(req.USN, profile, req.ExamIndex, coMap, catalog, req.TopK, predictor)
		if err != nil {
			return nil, err
		}
	} else {
		monitoring.FallbackActivations.WithLabelValues("cf_disabled").Inc()
		recs = s.contentOnly(coMap, catalog, preferred, effectiveness, req.TopK)
	}

	cfWeight := *req.CFWeight
	for co, rec := range recs {
		topics := preferred[co]
		ranked := s.Ranker.Rank(resourcesForCO(catalog, co), topics, effectiveness)

		contentScores := make(map[uint]float64, len(ranked))
		for _, sr := range ranked {
			contentScores[sr.Resource.ID] = sr.ContentScore
		}

		for i := range rec.Resources {
			r := &rec.Resources[i]
			r.ContentScore = contentScores[r.Resource.ID]
			r.HybridScore = Hybrid(r.CFScore, r.ContentScore, cfWeight)
		}
		// Degraded lists keep their documented order (ranker order for
		// cf-disabled, difficulty order for the no-data fallbacks);
		// hybrid sorting only means something when real CF scores
		// differentiate resources.
		if rec.FallbackReason == "" {
			sortByHybrid(rec.Resources)
		}
		if len(rec.Resources) > req.TopK {
			rec.Resources = rec.Resources[:req.TopK]
		}
		recs[co] = rec
	}

	out.Recommendations = recs
	return out, nil
}

// contentOnly serves each CO in the ranker's presentation order when
// collaborative filtering is switched off: topic matches lead, then easier
// and shorter resources. CF scores stay neutral so hybrid fusion cannot
// reshuffle the list.
func (s *RecommenderService) contentOnly(
	coMap map[string][]int,
	catalog []model.Resource,
	preferred map[string]map[string]bool,
	effectiveness map[uint]float64,
	topK int,
) map[string]model.CORecommendation {
	out := make(map[string]model.CORecommendation, len(coMap))
	for co := range coMap {
		ranked := s.Ranker.Rank(resourcesForCO(catalog, co), preferred[co], effectiveness)
		if len(ranked) > topK {
			ranked = ranked[:topK]
		}
		resources := make([]model.ScoredResource, len(ranked))
		for i, sr := range ranked {
			sr.CFScore = NeutralCFScore
			sr.UsedFallback = true
			resources[i] = sr
		}
		out[co] = model.CORecommendation{
			CO:             co,
			FallbackReason: FallbackCFDisabled,
			Resources:      resources,
		}
	}
	return out
}

func sortByHybrid(resources []model.ScoredResource) {
	sort.SliceStable(resources, func(i, j int) bool {
		if resources[i].HybridScore != resources[j].HybridScore {
			return resources[i].HybridScore > resources[j].HybridScore
		}
		return resources[i].Resource.ID < resources[j].Resource.ID
	})
}

// trainPredictor fits the learned model when the log is dense enough,
// otherwise returns nil and collaborative filtering keeps its neighbor
// averages.
func (s *RecommenderService) trainPredictor(interactions []model.Interaction, catalog []model.Resource) RatingPredictor {
	rows := aggregateInteractions(interactions)
	reg := TrainRegressor(rows, catalog, s.Cfg.MinTrainingSamples)
	if reg == nil {
		return nil
	}
	logger.Log.Debug("learned rating predictor active", zap.Int("samples", len(rows)))
	return reg
}
