// models/lesson.go - lessons, quizzes and quiz attempts
package models

import (
	"time"
)

// Lesson categories.
const (
	CategoryWaste        = "Waste Management"
	CategoryEnergy       = "Energy Conservation"
	CategoryWater        = "Water Conservation"
	CategoryBiodiversity = "Biodiversity"
)

// Lesson is a markdown article in one of the fixed eco categories.
type Lesson struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;size:200" json:"title"`
	Category  string    `gorm:"not null;size:50;index" json:"category"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Quiz is the optional question set paired with a lesson. One quiz per
// lesson by convention.
type Quiz struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	LessonID      uint           `gorm:"not null;index" json:"lesson_id"`
	Lesson        *Lesson        `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	PointsAwarded int            `gorm:"default:10" json:"points_awarded"`
	Questions     []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// QuizQuestion is one ordered multiple-choice question. CorrectAnswer is
// stripped from student-facing payloads.
type QuizQuestion struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	QuizID        uint       `gorm:"not null;index" json:"quiz_id"`
	Position      int        `gorm:"not null" json:"position"`
	Text          string     `gorm:"not null;type:text" json:"question"`
	Options       StringList `gorm:"type:text" json:"options"`
	CorrectAnswer string     `gorm:"not null;size:500" json:"correct_answer,omitempty"`
}

// QuizAttempt records one submission. Points are credited only on a user's
// first passing attempt per quiz.
type QuizAttempt struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	QuizID         uint      `gorm:"not null;index" json:"quiz_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Score          int       `gorm:"default:0" json:"score"`
	TotalQuestions int       `gorm:"default:0" json:"total_questions"`
	Percentage     float64   `gorm:"default:0" json:"percentage"`
	Passed         bool      `gorm:"default:false" json:"passed"`
	PointsAwarded  int       `gorm:"default:0" json:"points_awarded"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
