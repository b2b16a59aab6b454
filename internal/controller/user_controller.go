package controller

import (
	"strconv"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.UpdateProfileReq true "资料字段"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ListUsers godoc
// @Summary 用户列表
// @Description 管理员分页查询用户，可按角色过滤
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param   page  query int    false "页码" default(1)
// @Param   limit query int    false "每页数量" default(20)
// @Param   role  query string false "角色过滤"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	role := ctx.Query("role")

	users, total, err := c.UserService.GetUsers(page, limit, role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// GetUser godoc
// @Summary 查询单个用户
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	user, err := c.UserService.GetUser(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, user)
}

// AdminUpdateUser godoc
// @Summary 管理员更新用户
// @Description 修改用户姓名、角色或禁用状态
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "用户ID"
// @Param   body body service.AdminUpdateUserReq true "更新字段"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [put]
func (c *UserController) AdminUpdateUser(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.AdminUpdateUserReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.AdminUpdateUser(id, req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, user)
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// ResetPassword godoc
// @Summary 重置用户密码
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "用户ID"
// @Param   body body ResetPasswordRequest true "新密码"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/password [put]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.ResetPassword(id, req.Password); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// DeleteUser godoc
// @Summary 删除用户
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.UserService.DeleteUser(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
