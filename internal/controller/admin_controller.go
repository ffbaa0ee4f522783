package controller

import (
	"errors"
	"strconv"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// GetDashboard godoc
// @Summary 管理端概览
// @Description 全站统计加最近注册用户、新建课程与选课记录，默认各取5条
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "每类动态条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/admin/dashboard [get]
func (c *AdminController) GetDashboard(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 || limit > util.MaxLimit {
		util.BadRequest(ctx, "Limit must be between 1 and 100")
		return
	}

	stats, err := c.AdminService.GetDashboardStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	activity, err := c.AdminService.GetRecentActivities(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"stats":  stats,
		"recent": activity,
	}, "Dashboard retrieved successfully")
}

// ListUsers godoc
// @Summary 用户列表
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数（最大100）"
// @Param   role query string false "按角色过滤"
// @Param   isActive query bool false "按启用状态过滤"
// @Param   search query string false "按姓名或邮箱模糊检索"
// @Success 200 {object} util.Response{data=util.PageData} "成功"
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	q, err := util.ParsePagination(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	filter := repository.UserFilter{
		Search: ctx.Query("search"),
	}
	if role := ctx.Query("role"); role != "" {
		if !model.ValidRole(role) {
			util.BadRequest(ctx, "Role must be one of student, instructor, admin")
			return
		}
		filter.Role = model.UserRole(role)
	}
	if active, ok := parseBoolQuery(ctx, "isActive"); ok {
		filter.IsActive = active
	}

	users, total, err := c.AdminService.ListUsers(q, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessWithPagination(ctx, users, util.NewPageMeta(q, total), "Users retrieved successfully")
}

// GetUser godoc
// @Summary 用户详情
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=service.UserDetail} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [get]
func (c *AdminController) GetUser(ctx *gin.Context) {
	detail, err := c.AdminService.GetUser(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "User not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail, "User retrieved successfully")
}

// ToggleUserStatus godoc
// @Summary 启用/禁用用户
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id}/toggle-status [patch]
func (c *AdminController) ToggleUserStatus(ctx *gin.Context) {
	user, err := c.AdminService.ToggleUserStatus(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "User not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	msg := "User activated successfully"
	if !user.IsActive {
		msg = "User deactivated successfully"
	}
	util.Success(ctx, user, msg)
}

// ListCourses godoc
// @Summary 课程列表（含下架课程）
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数（最大100）"
// @Param   category query string false "按分类过滤"
// @Param   isActive query bool false "按上架状态过滤"
// @Param   search query string false "按标题模糊检索"
// @Success 200 {object} util.Response{data=util.PageData} "成功"
// @Router /api/admin/courses [get]
func (c *AdminController) ListCourses(ctx *gin.Context) {
	q, err := util.ParsePagination(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	filter := repository.CourseFilter{
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
	}
	if active, ok := parseBoolQuery(ctx, "isActive"); ok {
		filter.IsActive = active
	}
	if instructorID := util.MustParseUint(ctx.Query("instructorId")); instructorID > 0 {
		filter.InstructorID = instructorID
	}

	courses, total, err := c.AdminService.ListCourses(q, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessWithPagination(ctx, courses, util.NewPageMeta(q, total), "Courses retrieved successfully")
}

// GetCourse godoc
// @Summary 课程详情（含下架课程）
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.AdminCourseView} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id} [get]
func (c *AdminController) GetCourse(ctx *gin.Context) {
	view, err := c.AdminService.GetCourse(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view, "Course retrieved successfully")
}

// ToggleCourseStatus godoc
// @Summary 上架/下架课程
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id}/toggle-status [patch]
func (c *AdminController) ToggleCourseStatus(ctx *gin.Context) {
	course, err := c.AdminService.ToggleCourseStatus(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	msg := "Course activated successfully"
	if !course.IsActive {
		msg = "Course deactivated successfully"
	}
	util.Success(ctx, course, msg)
}

func parseBoolQuery(ctx *gin.Context, key string) (*bool, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}
