package controller

import (
	"net/http"
	"time"

	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB      *gorm.DB
	started time.Time
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db, started: time.Now()}
}

// Check godoc
// @Summary 服务健康检查
// @Tags 系统
// @Produce  json
// @Success 200 {object} util.Response{data=object} "服务正常"
// @Failure 500 {object} util.Response "数据库不可达"
// @Router /api/health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		util.Error(ctx, http.StatusInternalServerError, "Database unreachable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"uptime": time.Since(c.started).Round(time.Second).String(),
	}, "Service is healthy")
}
