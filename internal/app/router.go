package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// 课程目录对游客开放
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(a.Config), c.course.GetCourse)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.PUT("/me", c.user.UpdateProfile)
	rg.GET("/me/enrollments", c.course.MyEnrollments)
	rg.GET("/me/attempts", c.attempt.MyAttempts)
	rg.GET("/me/assignments", c.assignment.MySubmissions)

	rg.POST("/courses/:id/enroll", c.course.Enroll)

	// 测验：取题、作答、交卷
	rg.GET("/lessons/:id/quiz", c.quiz.StudentContent)
	rg.POST("/lessons/:id/attempts", c.attempt.StartAttempt)
	rg.GET("/attempts/:id", c.attempt.GetAttempt)
	rg.POST("/attempts/:id/submit", c.attempt.SubmitAttempt)

	// 作业
	rg.POST("/lessons/:id/assignment", c.assignment.Submit)
	rg.POST("/uploads", c.upload.UploadAttachment)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.GET("/courses", c.course.MyCourses)
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)

		instructor.POST("/courses/:id/topics", c.course.CreateTopic)
		instructor.PUT("/courses/:id/topics/reorder", c.course.ReorderTopics)
		instructor.PUT("/topics/:id", c.course.UpdateTopic)
		instructor.DELETE("/topics/:id", c.course.DeleteTopic)

		instructor.POST("/topics/:id/lessons", c.course.CreateLesson)
		instructor.PUT("/topics/:id/lessons/reorder", c.course.ReorderLessons)
		instructor.PUT("/lessons/:id", c.course.UpdateLesson)
		instructor.DELETE("/lessons/:id", c.course.DeleteLesson)

		instructor.POST("/uploads/image", c.upload.UploadImage)

		// 测验内容编辑
		instructor.GET("/lessons/:id/quiz", c.quiz.GetContent)
		instructor.PUT("/lessons/:id/quiz", c.quiz.SaveContent)
		instructor.DELETE("/lessons/:id/quiz", c.quiz.DeleteContent)

		// 成绩查询与作业评阅
		instructor.GET("/attempts", c.attempt.InstructorAttempts)
		instructor.GET("/lessons/:id/attempts", c.attempt.LessonAttempts)
		instructor.GET("/lessons/:id/assignments", c.assignment.LessonSubmissions)
		instructor.PUT("/assignments/:id/grade", c.assignment.Grade)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id", c.user.AdminUpdateUser)
		admin.PUT("/users/:id/password", c.user.ResetPassword)
		admin.DELETE("/users/:id", c.user.DeleteUser)

		admin.GET("/courses", c.course.AdminListCourses)
	}
}
