package controller

import (
	"errors"
	"strconv"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// SubmitAssignmentRequest 作业提交请求
type SubmitAssignmentRequest struct {
	Content string `json:"content"`
	FileURL string `json:"fileUrl"`
}

// Submit godoc
// @Summary 提交作业
// @Description 每个作业课时每人只能提交一次
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "课时ID"
// @Param   body body SubmitAssignmentRequest true "作业内容"
// @Success 201 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 403 {object} util.Response "未选课"
// @Failure 409 {object} util.Response "已提交"
// @Router /api/lessons/{id}/assignment [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	var req SubmitAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.AssignmentService.Submit(claims.UserID, lessonID, req.Content, req.FileURL)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, submission)
}

// MySubmissions godoc
// @Summary 我的作业提交
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.AssignmentSubmission}
// @Router /api/me/assignments [get]
func (c *AssignmentController) MySubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submissions, err := c.AssignmentService.MySubmissions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// LessonSubmissions godoc
// @Summary 课时作业提交列表
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id    path  int true  "课时ID"
// @Param   page  query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/instructor/lessons/{id}/assignments [get]
func (c *AssignmentController) LessonSubmissions(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	submissions, total, err := c.AssignmentService.LessonSubmissions(
		lessonID, claims.UserID, claims.Role == model.Admin, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound), errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, util.PageResponse{List: submissions, Total: total, Page: page, Limit: limit})
}

// GradeRequest 教师评分请求
type GradeRequest struct {
	Grade    int    `json:"grade" binding:"min=0,max=100"`
	Feedback string `json:"feedback"`
}

// Grade godoc
// @Summary 作业评分
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path string true "提交记录ID"
// @Param   body body GradeRequest true "分数与评语"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 403 {object} util.Response "非课程教师"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/instructor/assignments/{id}/grade [put]
func (c *AssignmentController) Grade(ctx *gin.Context) {
	submissionID := ctx.Param("id")
	claims := util.GetUserFromContext(ctx)

	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.AssignmentService.Grade(
		submissionID, claims.UserID, claims.Role == model.Admin, req.Grade, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, submission)
}
