package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// swagger:model EnrollRequest
type EnrollRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

// swagger:model MarkCompleteRequest
type MarkCompleteRequest struct {
	LessonID uint `json:"lessonId" binding:"required"`
}

// Enroll godoc
// @Summary 学生选课
// @Tags 选课
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EnrollRequest true "课程ID"
// @Success 201 {object} util.Response{data=model.Enrollment} "选课成功"
// @Failure 400 {object} util.Response "重复选课"
// @Failure 404 {object} util.Response "课程不存在或已下架"
// @Router /api/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide a course id")
		return
	}

	actor := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.Enroll(actor.ID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseInactive):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.EnrollmentCounter.Inc()
	util.Created(ctx, enrollment, "Enrolled successfully")
}

// ListMine godoc
// @Summary 我的选课
// @Description 每条记录附带派生进度与课时总数
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数（最大100）"
// @Success 200 {object} util.Response{data=util.PageData} "成功"
// @Router /api/enrollments/my-enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	q, err := util.ParsePagination(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetUserFromContext(ctx)
	views, total, err := c.EnrollmentService.ListMine(actor.ID, q)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.SuccessWithPagination(ctx, views, util.NewPageMeta(q, total), "Enrollments retrieved successfully")
}

// MarkLessonComplete godoc
// @Summary 标记课时完成
// @Description 幂等操作，重复标记不报错
// @Tags 选课
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body MarkCompleteRequest true "课时ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "课时不存在或未选课"
// @Router /api/enrollments/mark-complete [post]
func (c *EnrollmentController) MarkLessonComplete(ctx *gin.Context) {
	var req MarkCompleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide a lesson id")
		return
	}

	actor := util.GetUserFromContext(ctx)
	if err := c.EnrollmentService.MarkLessonComplete(actor.ID, req.LessonID); err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx, "Lesson not found")
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Lesson marked as complete"}, "Lesson marked as complete")
}

// ListStudents godoc
// @Summary 课程学员名册
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=util.PageData} "成功"
// @Failure 403 {object} util.Response "非课程归属讲师"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/students [get]
func (c *EnrollmentController) ListStudents(ctx *gin.Context) {
	q, err := util.ParsePagination(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetUserFromContext(ctx)
	students, total, err := c.EnrollmentService.ListStudents(util.MustParseUint(ctx.Param("id")), actor.ID, q)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "Course not found")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx, "User not authorized to view students for this course")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.SuccessWithPagination(ctx, students, util.NewPageMeta(q, total), "Students retrieved successfully")
}
