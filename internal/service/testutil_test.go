package service

import (
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库随连接销毁，限制连接池为单连接
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	db *gorm.DB

	users       *repository.UserRepository
	courses     *repository.CourseRepository
	lessons     *repository.LessonRepository
	enrollments *repository.EnrollmentRepository

	auth       *AuthService
	course     *CourseService
	lesson     *LessonService
	enrollment *EnrollmentService
	admin      *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:          db,
		users:       repository.NewUserRepository(db),
		courses:     repository.NewCourseRepository(db),
		lessons:     repository.NewLessonRepository(db),
		enrollments: repository.NewEnrollmentRepository(db),
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	env.auth = NewAuthService(env.users, cfg)
	env.course = NewCourseService(env.courses, env.lessons, env.enrollments)
	env.lesson = NewLessonService(env.lessons, env.courses, env.enrollments)
	env.enrollment = NewEnrollmentService(env.enrollments, env.courses, env.lessons)
	env.admin = NewAdminService(env.users, env.courses, env.enrollments)

	return env
}

func (e *testEnv) createUser(t *testing.T, email string, role model.UserRole) *model.User {
	t.Helper()

	user := &model.User{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
		Role:     role,
	}
	require.NoError(t, e.auth.Register(user))
	return user
}

func (e *testEnv) createCourse(t *testing.T, instructorID uint) *model.Course {
	t.Helper()

	course, err := e.course.Create(instructorID, CourseInput{
		Title:       "Go 基础",
		Description: "从零开始的 Go 课程",
		Category:    "programming",
	})
	require.NoError(t, err)
	return course
}

func (e *testEnv) createLesson(t *testing.T, courseID, instructorID uint, order int) *model.Lesson {
	t.Helper()

	lesson, err := e.lesson.Create(courseID, instructorID, LessonInput{
		Title:     "第一课",
		Content:   "Hello, Go",
		Order:     order,
		VideoURL:  "https://youtube.com/watch?v=abc",
		VideoType: model.VideoLink,
	})
	require.NoError(t, err)
	return lesson
}
