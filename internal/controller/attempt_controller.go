package controller

import (
	"errors"
	"strconv"

	"lms_backend/internal/model"
	"lms_backend/internal/quiz"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
	ReportService  *service.ReportService
}

func NewAttemptController(attemptService *service.AttemptService, reportService *service.ReportService) *AttemptController {
	return &AttemptController{
		AttemptService: attemptService,
		ReportService:  reportService,
	}
}

func writeAttemptError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrQuizContentNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrLessonNotQuiz):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrMaxAttemptsReached):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrAttemptAlreadySubmitted):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// StartAttempt godoc
// @Summary 开始答题
// @Description 已有未提交记录时返回该记录；retry模式下按maxAttempts限制次数
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Success 201 {object} util.Response{data=model.QuizAttempt}
// @Failure 400 {object} util.Response "课时不是测验类型"
// @Failure 403 {object} util.Response "未选课或次数已用尽"
// @Failure 404 {object} util.Response "测验内容不存在"
// @Router /api/lessons/{id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	attempt, err := c.AttemptService.StartAttempt(ctx.Request.Context(), claims.UserID, lessonID)
	if err != nil {
		writeAttemptError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// SubmitRequest 交卷请求，answers 按题目ID索引
type SubmitRequest struct {
	Answers quiz.AnswerSet `json:"answers" binding:"required"`
}

// SubmitAttempt godoc
// @Summary 提交答案并评分
// @Description 评分后记录不可变，重复提交返回409
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "答题记录ID"
// @Param   body body SubmitRequest true "答案集合"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Failure 403 {object} util.Response "非本人记录"
// @Failure 404 {object} util.Response "记录不存在"
// @Failure 409 {object} util.Response "已提交"
// @Router /api/attempts/{id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	attemptID := ctx.Param("id")
	claims := util.GetUserFromContext(ctx)

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.AttemptService.SubmitAttempt(ctx.Request.Context(), claims.UserID, attemptID, req.Answers)
	if err != nil {
		writeAttemptError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// GetAttempt godoc
// @Summary 查询答题记录
// @Description 学生只能查看本人的记录
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "答题记录ID"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attemptID := ctx.Param("id")
	claims := util.GetUserFromContext(ctx)

	attempt, err := c.AttemptService.GetAttempt(claims.UserID, attemptID, claims.Role == model.Admin)
	if err != nil {
		writeAttemptError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// MyAttempts godoc
// @Summary 我的答题记录
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Param   page  query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/me/attempts [get]
func (c *AttemptController) MyAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	attempts, total, err := c.ReportService.MyAttempts(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: attempts, Total: total, Page: page, Limit: limit})
}

// LessonAttempts godoc
// @Summary 课时答题记录
// @Description 课程教师查看某测验课时的全部提交
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Param   id        path  int  true  "课时ID"
// @Param   page      query int  false "页码" default(1)
// @Param   limit     query int  false "每页数量" default(20)
// @Param   completed query bool false "只看已提交" default(true)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/instructor/lessons/{id}/attempts [get]
func (c *AttemptController) LessonAttempts(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	completedOnly := ctx.DefaultQuery("completed", "true") == "true"

	attempts, total, err := c.ReportService.LessonAttempts(
		lessonID, claims.UserID, claims.Role == model.Admin, page, limit, completedOnly)
	if err != nil {
		writeAttemptError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: attempts, Total: total, Page: page, Limit: limit})
}

// InstructorAttempts godoc
// @Summary 名下课程的答题记录
// @Description 教师跨课程查看全部已提交记录
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Param   page  query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/instructor/attempts [get]
func (c *AttemptController) InstructorAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	attempts, total, err := c.ReportService.InstructorAttempts(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: attempts, Total: total, Page: page, Limit: limit})
}
