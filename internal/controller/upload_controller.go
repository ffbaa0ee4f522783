package controller

import (
	"path/filepath"
	"strings"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxImageSize = 5 << 20   // 5MB
	maxVideoSize = 500 << 20 // 500MB
)

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// UploadCourseImage godoc
// @Summary 上传课程封面图
// @Tags 上传
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "图片文件"
// @Success 201 {object} util.Response{data=object} "上传成功"
// @Failure 400 {object} util.Response "文件缺失或类型不符"
// @Router /api/uploads/course-image [post]
func (c *UploadController) UploadCourseImage(ctx *gin.Context) {
	c.upload(ctx, "images", []string{util.MimeImage}, maxImageSize)
}

// UploadLessonVideo godoc
// @Summary 上传课时视频
// @Tags 上传
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "视频文件"
// @Success 201 {object} util.Response{data=object} "上传成功"
// @Failure 400 {object} util.Response "文件缺失或类型不符"
// @Router /api/uploads/lesson-video [post]
func (c *UploadController) UploadLessonVideo(ctx *gin.Context) {
	c.upload(ctx, "videos", []string{util.MimeVideo}, maxVideoSize)
}

func (c *UploadController) upload(ctx *gin.Context, prefix string, allowedTypes []string, maxSize int64) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Please provide a file")
		return
	}
	if header.Size > maxSize {
		util.BadRequest(ctx, "File exceeds the maximum allowed size")
		return
	}

	src, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	contentType, err := util.ValidateMimeType(src, allowedTypes)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	// 探测读掉了文件头，上传前回到起始位置
	if _, err := src.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// 随机文件名防覆盖，仅保留原扩展名
	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := prefix + "/" + uuid.New().String() + ext

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, header.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"url":      url,
		"filename": filename,
		"mimeType": contentType,
		"size":     header.Size,
	}, "File uploaded successfully")
}
