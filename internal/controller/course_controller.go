package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// swagger:model CreateCourseRequest
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	ImageURL    string `json:"imageUrl"`
}

// swagger:model UpdateCourseRequest
type UpdateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
}

// Create godoc
// @Summary 创建课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide all fields")
		return
	}

	if req.ImageURL != "" && !util.IsValidURL(req.ImageURL) {
		util.BadRequest(ctx, "Image URL must be an absolute http(s) URL")
		return
	}

	actor := util.GetUserFromContext(ctx)
	course, err := c.CourseService.Create(actor.ID, service.CourseInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course, "Course created successfully")
}

// List godoc
// @Summary 课程列表
// @Description 公开接口；携带有效令牌时返回访问者的选课与进度信息
// @Tags 课程
// @Produce  json
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数（最大100）"
// @Param   sortBy query string false "排序字段"
// @Param   sortOrder query string false "asc 或 desc"
// @Success 200 {object} util.Response{data=util.PageData} "成功"
// @Failure 400 {object} util.Response "分页参数错误"
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	q, err := util.ParsePagination(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	viewer := util.GetUserFromContext(ctx)
	views, total, err := c.CourseService.ListPublic(q, viewer)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.SuccessWithPagination(ctx, views, util.NewPageMeta(q, total), "Courses retrieved successfully")
}

// GetByID godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetByID(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.NotFound(ctx, "Course not found")
		return
	}

	course, err := c.CourseService.GetByID(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, course, "Course retrieved successfully")
}

// Update godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body UpdateCourseRequest true "更新字段"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 403 {object} util.Response "非课程归属讲师"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [patch]
func (c *CourseController) Update(ctx *gin.Context) {
	var req UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.ImageURL != "" && !util.IsValidURL(req.ImageURL) {
		util.BadRequest(ctx, "Image URL must be an absolute http(s) URL")
		return
	}

	actor := util.GetUserFromContext(ctx)
	course, err := c.CourseService.Update(util.MustParseUint(ctx.Param("id")), actor.ID, service.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		c.handleCourseError(ctx, err, "update")
		return
	}

	util.Success(ctx, course, "Course updated successfully")
}

// Delete godoc
// @Summary 下架课程
// @Description 软删除：仅翻转 isActive
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "非课程归属讲师"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	actor := util.GetUserFromContext(ctx)
	if err := c.CourseService.Delete(util.MustParseUint(ctx.Param("id")), actor.ID); err != nil {
		c.handleCourseError(ctx, err, "delete")
		return
	}

	util.Success(ctx, gin.H{"message": "Course removed successfully"}, "Course deleted successfully")
}

// ListMine godoc
// @Summary 我创建的课程
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.PageData} "成功"
// @Router /api/courses/mine [get]
func (c *CourseController) ListMine(ctx *gin.Context) {
	q, err := util.ParsePagination(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetUserFromContext(ctx)
	courses, total, err := c.CourseService.ListByInstructor(actor.ID, q)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.SuccessWithPagination(ctx, courses, util.NewPageMeta(q, total), "Your courses retrieved successfully")
}

func (c *CourseController) handleCourseError(ctx *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx, "User not authorized to "+action+" this course")
	default:
		util.LogInternalError(ctx, err)
	}
}
