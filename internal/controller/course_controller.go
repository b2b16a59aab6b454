package controller

import (
	"errors"
	"strconv"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// instructorID 从上下文取请求者ID。管理员操作任意课程时沿用课程原教师
func instructorID(ctx *gin.Context) uint {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return 0
	}
	return claims.UserID
}

func writeCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrCourseNotPublished):
		util.Error(ctx, 403, err.Error())
	case errors.Is(err, util.ErrAlreadyEnrolled):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListCourses godoc
// @Summary 课程目录
// @Description 公开接口，只返回已发布课程，可按分类过滤
// @Tags 课程
// @Produce  json
// @Param   page     query int    false "页码" default(1)
// @Param   limit    query int    false "每页数量" default(20)
// @Param   category query string false "分类"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	category := ctx.Query("category")

	courses, total, err := c.CourseService.ListCourses(page, limit, true, category)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// GetCourse godoc
// @Summary 课程详情
// @Description 返回课程信息及章节/课时树
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	detail, err := c.CourseService.GetCourseDetail(id)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseReq true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(instructorID(ctx), req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "课程ID"
// @Param   body body service.CourseReq true "更新字段"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response "非课程教师"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(id, instructorID(ctx), req)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 级联删除章节、课时及测验内容
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.CourseService.DeleteCourse(id, instructorID(ctx)); err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MyCourses godoc
// @Summary 教师名下课程
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/instructor/courses [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListInstructorCourses(instructorID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CreateTopic godoc
// @Summary 创建章节
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "课程ID"
// @Param   body body service.TopicReq true "章节信息"
// @Success 201 {object} util.Response{data=model.Topic}
// @Router /api/instructor/courses/{id}/topics [post]
func (c *CourseController) CreateTopic(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var req service.TopicReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.CourseService.CreateTopic(courseID, instructorID(ctx), req)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// UpdateTopic godoc
// @Summary 更新章节
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "章节ID"
// @Param   body body service.TopicReq true "更新字段"
// @Success 200 {object} util.Response{data=model.Topic}
// @Router /api/instructor/topics/{id} [put]
func (c *CourseController) UpdateTopic(ctx *gin.Context) {
	topicID := util.MustParseUint(ctx.Param("id"))

	var req service.TopicReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.CourseService.UpdateTopic(topicID, instructorID(ctx), req)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// DeleteTopic godoc
// @Summary 删除章节
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/topics/{id} [delete]
func (c *CourseController) DeleteTopic(ctx *gin.Context) {
	topicID := util.MustParseUint(ctx.Param("id"))
	if err := c.CourseService.DeleteTopic(topicID, instructorID(ctx)); err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ReorderRequest 重排请求，按期望顺序给出全部ID
type ReorderRequest struct {
	OrderedIDs []uint `json:"orderedIds" binding:"required"`
}

// ReorderTopics godoc
// @Summary 章节重排
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "课程ID"
// @Param   body body ReorderRequest true "章节ID顺序"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id}/topics/reorder [put]
func (c *CourseController) ReorderTopics(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var req ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.ReorderTopics(courseID, instructorID(ctx), req.OrderedIDs); err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateLesson godoc
// @Summary 创建课时
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "章节ID"
// @Param   body body service.LessonReq true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/instructor/topics/{id}/lessons [post]
func (c *CourseController) CreateLesson(ctx *gin.Context) {
	topicID := util.MustParseUint(ctx.Param("id"))

	var req service.LessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.CreateLesson(topicID, instructorID(ctx), req)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary 更新课时
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "课时ID"
// @Param   body body service.LessonReq true "更新字段"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/instructor/lessons/{id} [put]
func (c *CourseController) UpdateLesson(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))

	var req service.LessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.UpdateLesson(lessonID, instructorID(ctx), req)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary 删除课时
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/lessons/{id} [delete]
func (c *CourseController) DeleteLesson(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))
	if err := c.CourseService.DeleteLesson(lessonID, instructorID(ctx)); err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ReorderLessons godoc
// @Summary 课时重排
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "章节ID"
// @Param   body body ReorderRequest true "课时ID顺序"
// @Success 200 {object} util.Response
// @Router /api/instructor/topics/{id}/lessons/reorder [put]
func (c *CourseController) ReorderLessons(ctx *gin.Context) {
	topicID := util.MustParseUint(ctx.Param("id"))

	var req ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.ReorderLessons(topicID, instructorID(ctx), req.OrderedIDs); err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Enroll godoc
// @Summary 选课
// @Description 学生报名已发布课程，重复报名返回409
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 403 {object} util.Response "课程未发布"
// @Failure 409 {object} util.Response "已报名"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	enrollment, err := c.CourseService.Enroll(claims.UserID, courseID)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// MyEnrollments godoc
// @Summary 我的选课
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/me/enrollments [get]
func (c *CourseController) MyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollments, err := c.CourseService.MyEnrollments(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// AdminListCourses godoc
// @Summary 全部课程
// @Description 管理员查看包含未发布在内的全部课程
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   page  query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/courses [get]
func (c *CourseController) AdminListCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	courses, total, err := c.CourseService.ListCourses(page, limit, false, ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}
