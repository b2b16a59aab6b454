package controller

import (
	"encoding/json"
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	ContentService *service.QuizContentService
}

func NewQuizController(contentService *service.QuizContentService) *QuizController {
	return &QuizController{ContentService: contentService}
}

func writeQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrQuizContentNotFound),
		errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrLessonNotQuiz):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied),
		errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// SaveContent godoc
// @Summary 保存测验内容
// @Description 整体覆盖课时的测验内容。先做结构校验，任何一条不通过都不落库，
// @Description 校验错误以列表返回；总分和题目数由服务端重算
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int    true "课时ID"
// @Param   body body object true "测验内容（题目+设置）"
// @Success 200 {object} util.Response{data=model.LessonQuizContent}
// @Failure 400 {object} util.Response "课时不是测验类型"
// @Failure 403 {object} util.Response "非课程教师"
// @Failure 404 {object} util.Response "课时不存在"
// @Failure 422 {object} util.Response "内容校验失败"
// @Router /api/instructor/lessons/{id}/quiz [put]
func (c *QuizController) SaveContent(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	raw, err := ctx.GetRawData()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, verrs, err := c.ContentService.Save(lessonID, claims.UserID, json.RawMessage(raw))
	if err != nil {
		writeQuizError(ctx, err)
		return
	}
	if len(verrs) > 0 {
		util.ValidationFailed(ctx, verrs)
		return
	}
	util.Success(ctx, record)
}

// GetContent godoc
// @Summary 读取测验内容（含答案）
// @Description 教师编辑视角，返回完整内容含正确答案
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=model.LessonQuizContent}
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/instructor/lessons/{id}/quiz [get]
func (c *QuizController) GetContent(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	record, err := c.ContentService.GetContent(lessonID, claims.UserID, claims.Role == model.Admin)
	if err != nil {
		writeQuizError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// DeleteContent godoc
// @Summary 删除测验内容
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/lessons/{id}/quiz [delete]
func (c *QuizController) DeleteContent(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	if err := c.ContentService.Delete(lessonID, claims.UserID, claims.Role == model.Admin); err != nil {
		writeQuizError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// StudentContent godoc
// @Summary 学生视角的测验内容
// @Description 返回抽题、乱序后的题目，正确答案与解析已剥离
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "未选课"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/lessons/{id}/quiz [get]
func (c *QuizController) StudentContent(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	content, err := c.ContentService.StudentContent(ctx.Request.Context(), lessonID, claims.UserID)
	if err != nil {
		writeQuizError(ctx, err)
		return
	}
	util.Success(ctx, content)
}
