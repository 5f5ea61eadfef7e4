package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/internal/service"
	"github.com/trahulprabhu38/major-project-sub000/internal/util"
)

// AnalyticsController serves weak-question analysis, recommendations and
// study plans.
type AnalyticsController struct {
	Performance *service.PerformanceService
	Recommender *service.RecommenderService
	Planner     *service.StudyPlanService
}

func NewAnalyticsController(performance *service.PerformanceService, recommender *service.RecommenderService, planner *service.StudyPlanService) *AnalyticsController {
	return &AnalyticsController{
		Performance: performance,
		Recommender: recommender,
		Planner:     planner,
	}
}

// resolveUSN picks the student being analyzed. Students are pinned to
// their own USN; teachers and admins may pass ?usn= for any student.
func resolveUSN(ctx *gin.Context) (string, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return "", false
	}

	if claims.Role == model.Student {
		if claims.USN == "" {
			util.BadRequest(ctx, "account has no USN")
			return "", false
		}
		return claims.USN, true
	}

	usn := ctx.Query("usn")
	if usn == "" {
		util.BadRequest(ctx, "usn query parameter required")
		return "", false
	}
	return usn, true
}

func (c *AnalyticsController) bindRequest(ctx *gin.Context) (service.RecommendRequest, bool) {
	usn, ok := resolveUSN(ctx)
	if !ok {
		return service.RecommendRequest{}, false
	}

	examIndex, err := strconv.Atoi(ctx.Param("examIndex"))
	if err != nil {
		util.BadRequest(ctx, "examIndex must be an integer")
		return service.RecommendRequest{}, false
	}

	req := service.RecommendRequest{
		USN:       usn,
		ExamIndex: examIndex,
		Threshold: util.ParseFloatDefault(ctx.Query("threshold"), 0),
		TopK:      util.ParseIntDefault(ctx.Query("topK"), 0),
	}
	// cfWeight=0 is a valid pure-content weighting, so the field is only
	// set when the parameter is present.
	if raw := ctx.Query("cfWeight"); raw != "" {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			util.BadRequest(ctx, "cfWeight must be a number")
			return service.RecommendRequest{}, false
		}
		req.CFWeight = &w
	}
	if raw := ctx.Query("useCF"); raw != "" {
		useCF := util.ParseBoolDefault(raw, true)
		req.UseCF = &useCF
	}
	return req, true
}

// WeakQuestions godoc
// @Summary 薄弱题检测
// @Description 根据阈值返回某次考试中学生的薄弱题号
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   examIndex path int true "考试序号 1-3"
// @Param   threshold query number false "薄弱阈值 1-10，默认5"
// @Param   usn query string false "学生USN（教师/管理员）"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/analytics/weak-questions/{examIndex} [get]
func (c *AnalyticsController) WeakQuestions(ctx *gin.Context) {
	usn, ok := resolveUSN(ctx)
	if !ok {
		return
	}

	examIndex, err := strconv.Atoi(ctx.Param("examIndex"))
	if err != nil || examIndex < 1 || examIndex > 3 {
		util.BadRequest(ctx, util.ErrInvalidExamIndex.Error())
		return
	}

	threshold := util.ParseFloatDefault(ctx.Query("threshold"), float64(c.Recommender.Cfg.DefaultThreshold))
	if threshold < 1 || threshold > 10 {
		util.BadRequest(ctx, util.ErrInvalidThreshold.Error())
		return
	}

	weak, err := c.Performance.DetectWeakQuestions(usn, examIndex, threshold)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	coMap, topicMap, err := c.Performance.MapQuestions(weak, examIndex)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"usn":           usn,
		"examIndex":     examIndex,
		"weakQuestions": util.IntsToStrings(weak),
		"coMap":         util.IntMapToStrings(coMap),
		"topicMap":      util.IntMapToStrings(topicMap),
	})
}

// Recommendations godoc
// @Summary 个性化补救资源推荐
// @Description 完整推荐流水线：薄弱题→CO映射→协同过滤+内容混合排序
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   examIndex path int true "考试序号 1-3"
// @Param   threshold query number false "薄弱阈值 1-10，默认5"
// @Param   topK query int false "每个CO返回资源数 1-20，默认7"
// @Param   cfWeight query number false "协同过滤权重 0-1，默认0.7"
// @Param   useCF query bool false "是否启用协同过滤，默认true"
// @Param   usn query string false "学生USN（教师/管理员）"
// @Success 200 {object} util.Response{data=model.RecommendationSet}
// @Failure 400 {object} util.Response
// @Router /api/analytics/recommendations/{examIndex} [get]
func (c *AnalyticsController) Recommendations(ctx *gin.Context) {
	req, ok := c.bindRequest(ctx)
	if !ok {
		return
	}

	set, err := c.Recommender.Recommend(ctx.Request.Context(), req)
	if err != nil {
		if util.IsValidationError(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, set)
}

// StudyPlan godoc
// @Summary 学习计划生成
// @Description 把推荐资源贪心打包到若干学习日
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   examIndex path int true "考试序号 1-3"
// @Param   studyDays query int false "学习天数 1-30，默认7"
// @Param   usn query string false "学生USN（教师/管理员）"
// @Success 200 {object} util.Response{data=model.StudyPlan}
// @Failure 400 {object} util.Response
// @Router /api/analytics/study-plan/{examIndex} [get]
func (c *AnalyticsController) StudyPlan(ctx *gin.Context) {
	req, ok := c.bindRequest(ctx)
	if !ok {
		return
	}

	studyDays := util.ParseIntDefault(ctx.Query("studyDays"), c.Recommender.Cfg.DefaultStudyDays)

	set, err := c.Recommender.Recommend(ctx.Request.Context(), req)
	if err != nil {
		if util.IsValidationError(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	plan, err := c.Planner.GeneratePlan(set, studyDays)
	if err != nil {
		if util.IsValidationError(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, plan)
}
