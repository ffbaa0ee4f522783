package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	auth := middleware.AuthMiddleware(cfg, repos.user)
	tryAuth := middleware.TryAuthMiddleware(cfg, repos.user)
	instructorOnly := middleware.RoleMiddleware(model.Instructor, model.Admin)
	adminOnly := middleware.RoleMiddleware(model.Admin)

	api := router.Group("/api")
	{
		api.GET("/health", c.health.Check)

		// 认证
		api.POST("/auth/register", c.auth.Register)
		api.POST("/auth/login", c.auth.Login)
		api.GET("/auth/profile", tryAuth, c.auth.GetProfile)

		// 课程：列表与详情公开，可选认证带出访问者视角
		courses := api.Group("/courses")
		{
			courses.GET("", tryAuth, c.course.List)
			courses.GET("/mine", auth, instructorOnly, c.course.ListMine)
			courses.GET("/:id", c.course.GetByID)
			courses.POST("", auth, instructorOnly, c.course.Create)
			courses.PATCH("/:id", auth, instructorOnly, c.course.Update)
			courses.DELETE("/:id", auth, instructorOnly, c.course.Delete)

			// 课时挂在课程之下
			courses.GET("/:id/lessons", tryAuth, c.lesson.ListForCourse)
			courses.POST("/:id/lessons", auth, instructorOnly, c.lesson.Create)

			// 学员名册
			courses.GET("/:id/students", auth, instructorOnly, c.enrollment.ListStudents)
		}

		lessons := api.Group("/lessons")
		{
			lessons.GET("/:id", c.lesson.GetByID)
			lessons.PATCH("/:id", auth, instructorOnly, c.lesson.Update)
			lessons.DELETE("/:id", auth, instructorOnly, c.lesson.Delete)
		}

		// 选课：选课本身限学生，查询与完成标记对所有登录用户开放
		enrollments := api.Group("/enrollments")
		enrollments.Use(auth)
		{
			enrollments.POST("", middleware.RoleMiddleware(model.Student), c.enrollment.Enroll)
			enrollments.GET("/my-enrollments", c.enrollment.ListMine)
			enrollments.POST("/mark-complete", c.enrollment.MarkLessonComplete)
		}

		// 上传
		uploads := api.Group("/uploads")
		uploads.Use(auth, instructorOnly)
		{
			uploads.POST("/course-image", c.upload.UploadCourseImage)
			uploads.POST("/lesson-video", c.upload.UploadLessonVideo)
		}

		// 管理端
		admin := api.Group("/admin")
		admin.Use(auth, adminOnly)
		{
			admin.GET("/dashboard", c.admin.GetDashboard)
			admin.GET("/users", c.admin.ListUsers)
			admin.GET("/users/:id", c.admin.GetUser)
			admin.PATCH("/users/:id/toggle-status", c.admin.ToggleUserStatus)
			admin.GET("/courses", c.admin.ListCourses)
			admin.GET("/courses/:id", c.admin.GetCourse)
			admin.PATCH("/courses/:id/toggle-status", c.admin.ToggleCourseStatus)
		}
	}
}
