package service

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/internal/repository"
	"github.com/trahulprabhu38/major-project-sub000/internal/util"
	"github.com/trahulprabhu38/major-project-sub000/pkg/logger"
)

// FeedbackService appends interaction records and drops any cached
// recommendations for the student, since new feedback changes scores.
type FeedbackService struct {
	Interactions *repository.InteractionRepository
	Resources    *repository.ResourceRepository
	Redis        *redis.Client
}

func NewFeedbackService(interactions *repository.InteractionRepository, resources *repository.ResourceRepository, rdb *redis.Client) *FeedbackService {
	return &FeedbackService{Interactions: interactions, Resources: resources, Redis: rdb}
}

func (s *FeedbackService) RecordVote(ctx context.Context, usn string, resourceID uint, up bool) error {
	value := -1.0
	if up {
		value = 1.0
	}
	return s.record(ctx, usn, resourceID, model.Vote, value)
}

func (s *FeedbackService) RecordRating(ctx context.Context, usn string, resourceID uint, rating float64) error {
	if rating < 1 || rating > 5 {
		return util.ErrInvalidRating
	}
	return s.record(ctx, usn, resourceID, model.Rating, rating)
}

func (s *FeedbackService) RecordCompletion(ctx context.Context, usn string, resourceID uint) error {
	return s.record(ctx, usn, resourceID, model.Completion, 0)
}

func (s *FeedbackService) record(ctx context.Context, usn string, resourceID uint, kind model.InteractionKind, value float64) error {
	if _, err := s.Resources.FindByID(resourceID); err != nil {
		return util.ErrResourceNotFound
	}

	interaction := &model.Interaction{
		USN:        usn,
		ResourceID: resourceID,
		Kind:       kind,
		Value:      value,
	}
	if err := s.Interactions.Append(interaction); err != nil {
		return err
	}

	s.invalidateCache(ctx, usn)
	logger.Log.Info("feedback recorded",
		zap.String("usn", usn),
		zap.Uint("resourceId", resourceID),
		zap.String("kind", string(kind)))
	return nil
}

// invalidateCache is best effort; a stale entry expires on its own.
func (s *FeedbackService) invalidateCache(ctx context.Context, usn string) {
	if s.Redis == nil {
		return
	}
	pattern := fmt.Sprintf("rec:%s:*", usn)
	keys, err := s.Redis.Keys(ctx, pattern).Result()
	if err != nil {
		logger.Log.Warn("cache invalidation scan failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
			logger.Log.Warn("cache invalidation delete failed", zap.Error(err))
		}
	}
}
