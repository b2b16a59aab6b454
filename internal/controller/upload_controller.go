package controller

import (
	"fmt"
	"path/filepath"
	"strings"

	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

func (c *UploadController) storeFile(ctx *gin.Context, prefix string) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	filename := fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().Format(util.DateFormat), uuid.New().String(), ext)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// UploadAttachment godoc
// @Summary 上传作业附件
// @Description 上传文件并返回可提交的URL
// @Tags 上传
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "附件"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "文件缺失"
// @Router /api/uploads [post]
func (c *UploadController) UploadAttachment(ctx *gin.Context) {
	c.storeFile(ctx, "attachments")
}

// UploadImage godoc
// @Summary 上传图片
// @Description 课程封面与题目配图上传，只接受常见图片格式
// @Tags 上传
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "图片文件"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "文件缺失或类型不允许"
// @Router /api/instructor/uploads/image [post]
func (c *UploadController) UploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range util.AllowedImageExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported image type: "+ext)
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, util.MimeImage) {
		util.BadRequest(ctx, "file is not an image")
		return
	}

	c.storeFile(ctx, "images")
}
