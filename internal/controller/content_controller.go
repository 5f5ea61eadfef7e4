package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/internal/repository"
	"github.com/trahulprabhu38/major-project-sub000/internal/service"
	"github.com/trahulprabhu38/major-project-sub000/internal/util"
)

// ContentController exposes the admin-side catalog, mapping and marks
// endpoints.
type ContentController struct {
	Content *service.ContentService
	Marks   *repository.MarksRepository
}

func NewContentController(content *service.ContentService, marks *repository.MarksRepository) *ContentController {
	return &ContentController{Content: content, Marks: marks}
}

type CreateResourceRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	URL              string `json:"url"`
	CO               string `json:"co" binding:"required"`
	Topic            string `json:"topic" binding:"required"`
	Difficulty       string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Type             string `json:"type" binding:"required,oneof=video article pdf worksheet"`
	EstimatedTimeMin int    `json:"estimatedTimeMin"`
}

// CreateResource godoc
// @Summary 新建补救资源
// @Tags 资源管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateResourceRequest true "资源信息"
// @Success 201 {object} util.Response{data=model.Resource}
// @Failure 400 {object} util.Response
// @Router /api/admin/resources [post]
func (c *ContentController) CreateResource(ctx *gin.Context) {
	var req CreateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	resource := &model.Resource{
		Title:            req.Title,
		Description:      req.Description,
		URL:              req.URL,
		CO:               req.CO,
		Topic:            req.Topic,
		Difficulty:       model.Difficulty(req.Difficulty),
		Type:             model.ResourceType(req.Type),
		EstimatedTimeMin: req.EstimatedTimeMin,
	}
	if claims != nil {
		resource.UploaderID = claims.UserID
	}

	if err := c.Content.CreateResource(resource); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, resource)
}

// ListResources godoc
// @Summary 资源列表
// @Tags 资源管理
// @Produce  json
// @Security BearerAuth
// @Param   co query string false "按CO过滤"
// @Success 200 {object} util.Response{data=[]model.Resource}
// @Router /api/admin/resources [get]
func (c *ContentController) ListResources(ctx *gin.Context) {
	var (
		resources []model.Resource
		err       error
	)
	if co := ctx.Query("co"); co != "" {
		resources, err = c.Content.ListResourcesByCO(co)
	} else {
		resources, err = c.Content.ListResources()
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resources)
}

// UploadResource godoc
// @Summary 上传资源文件
// @Description multipart上传，视频会自动探测时长补全预计学习时间
// @Tags 资源管理
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "资源文件"
// @Param   title formData string true "标题"
// @Param   co formData string true "课程目标"
// @Param   topic formData string true "主题"
// @Param   type formData string true "资源类型"
// @Success 201 {object} util.Response{data=model.Resource}
// @Failure 400 {object} util.Response
// @Router /api/admin/resources/upload [post]
func (c *ContentController) UploadResource(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	resource := &model.Resource{
		Title:            ctx.PostForm("title"),
		Description:      ctx.PostForm("description"),
		CO:               ctx.PostForm("co"),
		Topic:            ctx.PostForm("topic"),
		Difficulty:       model.Difficulty(ctx.PostForm("difficulty")),
		Type:             model.ResourceType(ctx.PostForm("type")),
		EstimatedTimeMin: util.ParseIntDefault(ctx.PostForm("estimatedTimeMin"), 0),
	}
	if resource.Title == "" || resource.CO == "" || resource.Type == "" {
		util.BadRequest(ctx, "title, co and type are required")
		return
	}
	if claims := util.GetUserFromContext(ctx); claims != nil {
		resource.UploaderID = claims.UserID
	}

	if _, err := c.Content.UploadResourceFile(ctx.Request.Context(), file, resource); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.Content.CreateResource(resource); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, resource)
}

type CreateMappingRequest struct {
	ExamIndex int    `json:"examIndex" binding:"required"`
	Question  int    `json:"question" binding:"required"`
	CO        string `json:"co" binding:"required"`
	Topic     string `json:"topic" binding:"required"`
}

// CreateMapping godoc
// @Summary 新建题目-CO映射
// @Tags 资源管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateMappingRequest true "映射"
// @Success 201 {object} util.Response{data=model.QuestionMapping}
// @Failure 400 {object} util.Response
// @Router /api/admin/question-mappings [post]
func (c *ContentController) CreateMapping(ctx *gin.Context) {
	var req CreateMappingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mapping := &model.QuestionMapping{
		ExamIndex: req.ExamIndex,
		Question:  req.Question,
		CO:        req.CO,
		Topic:     req.Topic,
	}
	if err := c.Content.CreateMapping(mapping); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, mapping)
}

// ListMappings godoc
// @Summary 查看某次考试的映射表
// @Tags 资源管理
// @Produce  json
// @Security BearerAuth
// @Param   examIndex path int true "考试序号 1-3"
// @Success 200 {object} util.Response{data=[]model.QuestionMapping}
// @Router /api/admin/question-mappings/{examIndex} [get]
func (c *ContentController) ListMappings(ctx *gin.Context) {
	examIndex, err := strconv.Atoi(ctx.Param("examIndex"))
	if err != nil {
		util.BadRequest(ctx, "examIndex must be an integer")
		return
	}

	mappings, err := c.Content.ListMappings(examIndex)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, mappings)
}

type MarkEntry struct {
	Question int      `json:"question" binding:"required"`
	Part     string   `json:"part"`
	Score    *float64 `json:"score"`
}

type UploadMarksRequest struct {
	USN       string      `json:"usn" binding:"required"`
	ExamIndex int         `json:"examIndex" binding:"required"`
	Marks     []MarkEntry `json:"marks" binding:"required"`
}

// UploadMarks godoc
// @Summary 上传学生成绩
// @Description 整表替换某学生某次考试的分项成绩，score为null表示未作答
// @Tags 资源管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body UploadMarksRequest true "成绩"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/marks [post]
func (c *ContentController) UploadMarks(ctx *gin.Context) {
	var req UploadMarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.ExamIndex < 1 || req.ExamIndex > 3 {
		util.BadRequest(ctx, util.ErrInvalidExamIndex.Error())
		return
	}

	marks := make([]model.StudentMark, len(req.Marks))
	for i, m := range req.Marks {
		marks[i] = model.StudentMark{
			Question: m.Question,
			Part:     m.Part,
			Score:    m.Score,
		}
	}

	if err := c.Marks.BulkCreate(req.USN, req.ExamIndex, marks); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"count": len(marks)})
}
