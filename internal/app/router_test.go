package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testApp struct {
	app    *App
	router *gin.Engine
	repos  *repositories
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger.InitLogger("test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	a := &App{Config: cfg, DB: db}
	repos := a.initRepositories(db)
	a.repos = repos
	services := a.initServices(repos, cfg)
	controllers := a.initControllers(services, db)

	router := gin.New()
	a.Router = router
	a.registerRoutes(router, controllers, repos, cfg)

	return &testApp{app: a, router: router, repos: repos}
}

func (ta *testApp) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)

	var envelope map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	}
	return w, envelope
}

func (ta *testApp) register(t *testing.T, email, role string) {
	t.Helper()
	w, _ := ta.do(t, "POST", "/api/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func (ta *testApp) login(t *testing.T, email string) string {
	t.Helper()
	w, resp := ta.do(t, "POST", "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	return data["token"].(string)
}

// createAdmin 管理员不开放注册，直接写库
func (ta *testApp) createAdmin(t *testing.T, email string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, ta.repos.user.Create(&model.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		Role:     model.Admin,
		IsActive: true,
	}))
}

func TestFullLearningFlow(t *testing.T) {
	ta := newTestApp(t)

	ta.register(t, "teacher@example.com", "instructor")
	teacherToken := ta.login(t, "teacher@example.com")

	// 讲师建课
	w, resp := ta.do(t, "POST", "/api/courses", teacherToken, gin.H{
		"title":       "Go 基础",
		"description": "从零开始",
		"category":    "programming",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	courseID := int(resp["data"].(map[string]interface{})["id"].(float64))

	// 加一节课时
	w, resp = ta.do(t, "POST", fmt.Sprintf("/api/courses/%d/lessons", courseID), teacherToken, gin.H{
		"title":     "第一课",
		"content":   "Hello, Go",
		"order":     1,
		"videoUrl":  "https://youtube.com/watch?v=abc",
		"videoType": "link",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	lessonID := int(resp["data"].(map[string]interface{})["id"].(float64))

	// 学生选课并完成课时
	ta.register(t, "student@example.com", "student")
	studentToken := ta.login(t, "student@example.com")

	w, _ = ta.do(t, "POST", "/api/enrollments", studentToken, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusCreated, w.Code)

	// 重复选课
	w, resp = ta.do(t, "POST", "/api/enrollments", studentToken, gin.H{"courseId": courseID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])

	w, _ = ta.do(t, "POST", "/api/enrollments/mark-complete", studentToken, gin.H{"lessonId": lessonID})
	require.Equal(t, http.StatusOK, w.Code)

	// 我的选课里进度 100
	w, resp = ta.do(t, "GET", "/api/enrollments/my-enrollments", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := resp["data"].(map[string]interface{})
	items := page["data"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, float64(100), first["progress"])
	assert.Equal(t, float64(1), first["totalLessons"])
	pagination := page["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["totalItems"])
}

func TestCourseListViewerPerspective(t *testing.T) {
	ta := newTestApp(t)

	ta.register(t, "teacher@example.com", "instructor")
	teacherToken := ta.login(t, "teacher@example.com")

	w, resp := ta.do(t, "POST", "/api/courses", teacherToken, gin.H{
		"title":       "Go 基础",
		"description": "从零开始",
		"category":    "programming",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	courseID := int(resp["data"].(map[string]interface{})["id"].(float64))

	ta.register(t, "student@example.com", "student")
	studentToken := ta.login(t, "student@example.com")
	w, _ = ta.do(t, "POST", "/api/enrollments", studentToken, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusCreated, w.Code)

	// 匿名访问：enrollment false
	w, resp = ta.do(t, "GET", "/api/courses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := resp["data"].(map[string]interface{})["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, false, items[0].(map[string]interface{})["enrollment"])

	// 学生访问：enrollment true
	w, resp = ta.do(t, "GET", "/api/courses", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items = resp["data"].(map[string]interface{})["data"].([]interface{})
	assert.Equal(t, true, items[0].(map[string]interface{})["enrollment"])

	// 非法分页参数
	w, resp = ta.do(t, "GET", "/api/courses?page=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Page must be a positive integer", resp["message"])
}

func TestAuthGuards(t *testing.T) {
	ta := newTestApp(t)

	ta.register(t, "student@example.com", "student")
	studentToken := ta.login(t, "student@example.com")

	// 无令牌
	w, resp := ta.do(t, "POST", "/api/courses", "", gin.H{
		"title": "x", "description": "y", "category": "z",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, no token", resp["message"])

	// 伪造令牌
	w, resp = ta.do(t, "GET", "/api/enrollments/my-enrollments", "garbage.token.here", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, token failed", resp["message"])

	// 角色不符
	w, _ = ta.do(t, "POST", "/api/courses", studentToken, gin.H{
		"title": "x", "description": "y", "category": "z",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = ta.do(t, "GET", "/api/admin/dashboard", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 注册不允许管理员角色
	w, resp = ta.do(t, "POST", "/api/auth/register", "", gin.H{
		"name": "Eve", "email": "eve@example.com", "password": "password123", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Role must be either student or instructor", resp["message"])
}

func TestEnrollmentRoutesRoleGates(t *testing.T) {
	ta := newTestApp(t)

	ta.register(t, "teacher@example.com", "instructor")
	teacherToken := ta.login(t, "teacher@example.com")

	// 选课限学生角色
	w, _ := ta.do(t, "POST", "/api/enrollments", teacherToken, gin.H{"courseId": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 查询选课任何登录用户都可访问，没选课就是空页
	w, resp := ta.do(t, "GET", "/api/enrollments/my-enrollments", teacherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := resp["data"].(map[string]interface{})
	assert.Empty(t, page["data"])
	assert.Equal(t, float64(0), page["pagination"].(map[string]interface{})["totalItems"])
}

func TestDeactivatedAccountRejected(t *testing.T) {
	ta := newTestApp(t)

	ta.register(t, "student@example.com", "student")
	studentToken := ta.login(t, "student@example.com")

	ta.createAdmin(t, "admin@example.com")
	adminToken := ta.login(t, "admin@example.com")

	// 管理员禁用账号
	user, err := ta.repos.user.FindByEmail("student@example.com")
	require.NoError(t, err)
	w, _ := ta.do(t, "PATCH", fmt.Sprintf("/api/admin/users/%d/toggle-status", user.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 已签发的令牌立即失效
	w, _ = ta.do(t, "GET", "/api/enrollments/my-enrollments", studentToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 登录也被拒绝
	w, resp := ta.do(t, "POST", "/api/auth/login", "", gin.H{
		"email": "student@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Your account has been deactivated. Please contact support.", resp["message"])
}

func TestAdminEndpoints(t *testing.T) {
	ta := newTestApp(t)

	ta.createAdmin(t, "admin@example.com")
	adminToken := ta.login(t, "admin@example.com")

	ta.register(t, "teacher@example.com", "instructor")
	teacherToken := ta.login(t, "teacher@example.com")
	w, resp := ta.do(t, "POST", "/api/courses", teacherToken, gin.H{
		"title": "Go 基础", "description": "d", "category": "programming",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	courseID := int(resp["data"].(map[string]interface{})["id"].(float64))

	w, resp = ta.do(t, "GET", "/api/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := resp["data"].(map[string]interface{})["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalInstructors"])
	assert.Equal(t, float64(1), stats["totalCourses"])

	// 下架后公开列表不可见，管理端列表可见
	w, _ = ta.do(t, "PATCH", fmt.Sprintf("/api/admin/courses/%d/toggle-status", courseID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = ta.do(t, "GET", "/api/courses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["data"].(map[string]interface{})["data"])

	w, resp = ta.do(t, "GET", "/api/admin/courses", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := resp["data"].(map[string]interface{})["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, false, items[0].(map[string]interface{})["isActive"])
}
