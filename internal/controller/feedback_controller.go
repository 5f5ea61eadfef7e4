package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/trahulprabhu38/major-project-sub000/internal/service"
	"github.com/trahulprabhu38/major-project-sub000/internal/util"
)

type FeedbackController struct {
	Feedback *service.FeedbackService
}

func NewFeedbackController(feedback *service.FeedbackService) *FeedbackController {
	return &FeedbackController{Feedback: feedback}
}

func feedbackUSN(ctx *gin.Context) (string, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.USN == "" {
		util.Unauthorized(ctx)
		return "", false
	}
	return claims.USN, true
}

type VoteRequest struct {
	ResourceID uint `json:"resourceId" binding:"required"`
	Up         bool `json:"up"`
}

// Vote godoc
// @Summary 资源投票
// @Description 对推荐资源点赞或点踩
// @Tags 反馈
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body VoteRequest true "投票"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "资源不存在"
// @Router /api/feedback/vote [post]
func (c *FeedbackController) Vote(ctx *gin.Context) {
	usn, ok := feedbackUSN(ctx)
	if !ok {
		return
	}

	var req VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Feedback.RecordVote(ctx.Request.Context(), usn, req.ResourceID, req.Up); err != nil {
		feedbackError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type RatingRequest struct {
	ResourceID uint    `json:"resourceId" binding:"required"`
	Rating     float64 `json:"rating" binding:"required"`
}

// Rate godoc
// @Summary 资源评分
// @Description 给资源打1-5分
// @Tags 反馈
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body RatingRequest true "评分"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "评分超出范围"
// @Failure 404 {object} util.Response "资源不存在"
// @Router /api/feedback/rating [post]
func (c *FeedbackController) Rate(ctx *gin.Context) {
	usn, ok := feedbackUSN(ctx)
	if !ok {
		return
	}

	var req RatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Feedback.RecordRating(ctx.Request.Context(), usn, req.ResourceID, req.Rating); err != nil {
		feedbackError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type CompletionRequest struct {
	ResourceID uint `json:"resourceId" binding:"required"`
}

// Complete godoc
// @Summary 资源完成打卡
// @Tags 反馈
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CompletionRequest true "完成记录"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "资源不存在"
// @Router /api/feedback/completion [post]
func (c *FeedbackController) Complete(ctx *gin.Context) {
	usn, ok := feedbackUSN(ctx)
	if !ok {
		return
	}

	var req CompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Feedback.RecordCompletion(ctx.Request.Context(), usn, req.ResourceID); err != nil {
		feedbackError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func feedbackError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrResourceNotFound):
		util.NotFound(ctx)
	case util.IsValidationError(err):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
