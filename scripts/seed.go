// 初始化演示数据脚本
//
// 创建管理员账号、一名教师及一门带测验课时的示例课程，
// 用于首次部署或本地联调。重复执行是安全的：已存在的邮箱会跳过。
//
// 用法: go run scripts/seed.go
package main

import (
	"encoding/json"
	"log"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/quiz"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	ensureUser(db, "admin@example.com", "管理员", model.Admin)
	instructor := ensureUser(db, "instructor@example.com", "示例教师", model.Instructor)
	ensureUser(db, "student@example.com", "示例学生", model.Student)

	seedDemoCourse(db, instructor.ID)
	log.Println("完成！")
}

func ensureUser(db *gorm.DB, email, name string, role model.UserRole) *model.User {
	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("跳过已存在用户 %s", email)
		return &existing
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	user := &model.User{Name: name, Email: email, Password: string(hashed), Role: role}
	if err := db.Create(user).Error; err != nil {
		log.Fatalf("创建用户失败: %v", err)
	}
	log.Printf("已创建用户 %s (%s)", email, role)
	return user
}

func seedDemoCourse(db *gorm.DB, instructorID uint) {
	var count int64
	db.Model(&model.Course{}).Where("title = ?", "Go 入门").Count(&count)
	if count > 0 {
		log.Println("跳过已存在的示例课程")
		return
	}

	course := &model.Course{
		Title:        "Go 入门",
		Description:  "从零开始的 Go 语言课程",
		Category:     "编程",
		InstructorID: instructorID,
		IsPublished:  true,
	}
	if err := db.Create(course).Error; err != nil {
		log.Fatalf("创建课程失败: %v", err)
	}

	topic := &model.Topic{CourseID: course.ID, Title: "基础语法", SortOrder: 0}
	if err := db.Create(topic).Error; err != nil {
		log.Fatalf("创建章节失败: %v", err)
	}

	lesson := &model.Lesson{
		TopicID:     topic.ID,
		CourseID:    course.ID,
		Title:       "第一章小测",
		ContentType: model.LessonQuiz,
		SortOrder:   0,
	}
	if err := db.Create(lesson).Error; err != nil {
		log.Fatalf("创建课时失败: %v", err)
	}

	content := quiz.Content{
		Questions: []quiz.Question{
			{
				ID: "q1", Type: quiz.TrueFalse, Prompt: "Go 有垃圾回收。", Points: 5,
				CorrectAnswer: json.RawMessage(`true`),
			},
			{
				ID: "q2", Type: quiz.SingleChoice, Prompt: "声明变量的关键字是？", Points: 5,
				Options: []quiz.Option{
					{ID: "a", Text: "let"}, {ID: "b", Text: "var"}, {ID: "c", Text: "def"},
				},
				CorrectAnswer: json.RawMessage(`"b"`),
			},
		},
		Settings: quiz.Settings{PassingScore: 60},
	}
	content.Metadata = quiz.ComputeMetadata(content.Questions)

	raw, err := json.Marshal(&content)
	if err != nil {
		log.Fatalf("序列化测验内容失败: %v", err)
	}

	record := &model.LessonQuizContent{
		LessonID:      lesson.ID,
		CourseID:      course.ID,
		Content:       raw,
		TotalPoints:   content.Metadata.TotalPoints,
		QuestionCount: content.Metadata.QuestionCount,
		UpdatedBy:     instructorID,
	}
	if err := db.Create(record).Error; err != nil {
		log.Fatalf("创建测验内容失败: %v", err)
	}
	log.Println("已创建示例课程与测验")
}
