package controller

import (
	"errors"
	"net/http"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// swagger:model CreateLessonRequest
type CreateLessonRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Order     int    `json:"order"`
	VideoURL  string `json:"videoUrl"`
	VideoType string `json:"videoType"`
}

// swagger:model UpdateLessonRequest
type UpdateLessonRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Order     int    `json:"order"`
	VideoURL  string `json:"videoUrl"`
	VideoType string `json:"videoType"`
}

// Create godoc
// @Summary 创建课时
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body CreateLessonRequest true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson} "创建成功"
// @Failure 400 {object} util.Response "视频缺失或外链非法"
// @Failure 403 {object} util.Response "非课程归属讲师"
// @Router /api/courses/{id}/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	var req CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide title and content")
		return
	}

	actor := util.GetUserFromContext(ctx)
	lesson, err := c.LessonService.Create(util.MustParseUint(ctx.Param("id")), actor.ID, service.LessonInput{
		Title:     req.Title,
		Content:   req.Content,
		Order:     req.Order,
		VideoURL:  req.VideoURL,
		VideoType: model.VideoType(req.VideoType),
	})
	if err != nil {
		c.handleLessonError(ctx, err, "modify")
		return
	}

	util.Created(ctx, lesson, "Lesson created successfully")
}

// ListForCourse godoc
// @Summary 课程课时列表
// @Description 公开接口；携带有效令牌时返回访问者的完成标记
// @Tags 课时
// @Produce  json
// @Param   id path int true "课程ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数（最大100）"
// @Success 200 {object} util.Response{data=util.PageData} "成功"
// @Router /api/courses/{id}/lessons [get]
func (c *LessonController) ListForCourse(ctx *gin.Context) {
	q, err := util.ParsePagination(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	viewer := util.GetUserFromContext(ctx)
	views, total, err := c.LessonService.ListForCourse(util.MustParseUint(ctx.Param("id")), q, viewer)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.SuccessWithPagination(ctx, views, util.NewPageMeta(q, total), "Lessons retrieved successfully")
}

// GetByID godoc
// @Summary 课时详情
// @Tags 课时
// @Produce  json
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetByID(ctx *gin.Context) {
	lesson, err := c.LessonService.GetByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, "Lesson not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, lesson, "Lesson retrieved successfully")
}

// Update godoc
// @Summary 更新课时
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Param   body body UpdateLessonRequest true "更新字段"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Failure 403 {object} util.Response "非课程归属讲师"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [patch]
func (c *LessonController) Update(ctx *gin.Context) {
	var req UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetUserFromContext(ctx)
	lesson, err := c.LessonService.Update(util.MustParseUint(ctx.Param("id")), actor.ID, service.LessonUpdate{
		Title:     req.Title,
		Content:   req.Content,
		Order:     req.Order,
		VideoURL:  req.VideoURL,
		VideoType: model.VideoType(req.VideoType),
	})
	if err != nil {
		c.handleLessonError(ctx, err, "update")
		return
	}

	util.Success(ctx, lesson, "Lesson updated successfully")
}

// Delete godoc
// @Summary 删除课时
// @Tags 课时
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "非课程归属讲师"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	actor := util.GetUserFromContext(ctx)
	if err := c.LessonService.Delete(util.MustParseUint(ctx.Param("id")), actor.ID); err != nil {
		c.handleLessonError(ctx, err, "delete")
		return
	}

	util.Success(ctx, gin.H{"message": "Lesson removed successfully"}, "Lesson deleted successfully")
}

func (c *LessonController) handleLessonError(ctx *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx, "Lesson not found")
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx, "User not authorized to "+action+" lessons for this course")
	case errors.Is(err, util.ErrVideoRequired), errors.Is(err, util.ErrInvalidVideoURL):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrCourseUnresolvable):
		util.Error(ctx, http.StatusInternalServerError, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
