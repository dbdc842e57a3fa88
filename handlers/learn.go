// handlers/learn.go - lessons, quizzes and quiz submission
package handlers

import (
	"errors"

	"greenspark/database"
	"greenspark/middleware"
	"greenspark/models"
	"greenspark/services"
	"greenspark/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuestionInput struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=1"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

type LessonRequest struct {
	Title         string          `json:"title" validate:"required"`
	Category      string          `json:"category" validate:"required,oneof='Waste Management' 'Energy Conservation' 'Water Conservation' 'Biodiversity'"`
	Content       string          `json:"content" validate:"required"`
	PointsAwarded int             `json:"pointsAwarded"`
	Questions     []QuestionInput `json:"questions"`
}

type SubmitQuizRequest struct {
	Answers []string `json:"answers"`
}

type LessonSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// quizForStudent strips correct answers before a quiz goes to a student.
type studentQuestion struct {
	ID       uint              `json:"id"`
	Position int               `json:"position"`
	Question string            `json:"question"`
	Options  models.StringList `json:"options"`
}

type studentQuiz struct {
	ID            uint              `json:"id"`
	LessonID      uint              `json:"lesson_id"`
	PointsAwarded int               `json:"points_awarded"`
	Questions     []studentQuestion `json:"questions"`
}

func quizForStudent(q *models.Quiz) *studentQuiz {
	if q == nil {
		return nil
	}
	out := &studentQuiz{
		ID:            q.ID,
		LessonID:      q.LessonID,
		PointsAwarded: q.PointsAwarded,
		Questions:     make([]studentQuestion, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		out.Questions = append(out.Questions, studentQuestion{
			ID:       question.ID,
			Position: question.Position,
			Question: question.Text,
			Options:  question.Options,
		})
	}
	return out
}

// GetLessons lists lesson titles and categories. Public.
func GetLessons(c *fiber.Ctx) error {
	db := database.GetDB()

	var lessons []LessonSummary
	if err := db.Model(&models.Lesson{}).
		Select("id", "title", "category").
		Find(&lessons).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching lessons"})
	}

	return c.JSON(lessons)
}

// GetLesson returns one lesson and its quiz with correct answers stripped.
func GetLesson(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid lesson id"})
	}

	db := database.GetDB()

	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Lesson not found."})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching the lesson"})
	}

	var quiz models.Quiz
	var quizOut *studentQuiz
	err = db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("lesson_id = ?", lesson.ID).First(&quiz).Error
	if err == nil {
		quizOut = quizForStudent(&quiz)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching the lesson"})
	}

	return c.JSON(fiber.Map{"lesson": lesson, "quiz": quizOut})
}

// SubmitQuiz scores the caller's answers and awards points on their first
// passing attempt.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	quizID, err := c.ParamsInt("id")
	if err != nil || quizID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid quiz id"})
	}

	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	svc := services.NewPointsService(database.GetDB())
	result, err := svc.SubmitQuiz(uint(quizID), userID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuizNotFound):
			return c.Status(404).JSON(fiber.Map{"message": "Quiz not found."})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(404).JSON(fiber.Map{"message": "User not found"})
		default:
			return c.Status(500).JSON(fiber.Map{"message": "Server error while submitting the quiz"})
		}
	}

	return c.JSON(result)
}

// GetAdminLessons returns every lesson with its full quiz for the management
// panel.
func GetAdminLessons(c *fiber.Ctx) error {
	db := database.GetDB()

	var lessons []models.Lesson
	if err := db.Find(&lessons).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching lessons"})
	}

	type lessonWithQuiz struct {
		models.Lesson
		Quiz *models.Quiz `json:"quiz"`
	}

	out := make([]lessonWithQuiz, 0, len(lessons))
	for _, lesson := range lessons {
		var quiz models.Quiz
		entry := lessonWithQuiz{Lesson: lesson}
		err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).Where("lesson_id = ?", lesson.ID).First(&quiz).Error
		if err == nil {
			entry.Quiz = &quiz
		}
		out = append(out, entry)
	}

	return c.JSON(out)
}

// CreateLesson creates a lesson and, when questions are supplied, its paired
// quiz.
func CreateLesson(c *fiber.Ctx) error {
	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": utils.ValidationMessage(err)})
	}

	db := database.GetDB()

	err := db.Transaction(func(tx *gorm.DB) error {
		lesson := models.Lesson{
			Title:    req.Title,
			Category: req.Category,
			Content:  req.Content,
		}
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}

		if len(req.Questions) == 0 {
			return nil
		}

		points := req.PointsAwarded
		if points <= 0 {
			points = 10
		}

		quiz := models.Quiz{LessonID: lesson.ID, PointsAwarded: points}
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}

		rows := questionRows(quiz.ID, req.Questions)
		return tx.Create(&rows).Error
	})

	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while creating lesson"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Lesson and quiz created successfully!"})
}

// UpdateLesson updates a lesson and replaces its quiz questions.
func UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid lesson id"})
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	db := database.GetDB()

	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Lesson not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Server error while updating lesson"})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if req.Title != "" {
			lesson.Title = req.Title
		}
		if req.Category != "" {
			lesson.Category = req.Category
		}
		if req.Content != "" {
			lesson.Content = req.Content
		}
		if err := tx.Save(&lesson).Error; err != nil {
			return err
		}

		if req.Questions == nil {
			return nil
		}

		var quiz models.Quiz
		err := tx.Where("lesson_id = ?", lesson.ID).First(&quiz).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			quiz = models.Quiz{LessonID: lesson.ID, PointsAwarded: 10}
			if err := tx.Create(&quiz).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		if len(req.Questions) == 0 {
			return nil
		}
		rows := questionRows(quiz.ID, req.Questions)
		return tx.Create(&rows).Error
	})

	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while updating lesson"})
	}

	return c.JSON(fiber.Map{"message": "Lesson updated successfully", "lesson": lesson})
}

// DeleteLesson removes a lesson, its quiz and the quiz's questions.
func DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid lesson id"})
	}

	db := database.GetDB()

	err = db.Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		err := tx.Where("lesson_id = ?", lessonID).First(&quiz).Error
		if err == nil {
			if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.QuizQuestion{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&quiz).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Delete(&models.Lesson{}, lessonID).Error
	})

	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while deleting lesson"})
	}

	return c.JSON(fiber.Map{"message": "Lesson and associated quiz deleted"})
}

func questionRows(quizID uint, inputs []QuestionInput) []models.QuizQuestion {
	rows := make([]models.QuizQuestion, 0, len(inputs))
	for i, q := range inputs {
		rows = append(rows, models.QuizQuestion{
			QuizID:        quizID,
			Position:      i,
			Text:          q.Question,
			Options:       models.StringList(q.Options),
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return rows
}
