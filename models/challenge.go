// models/challenge.go
package models

import (
	"time"
)

// Challenge is a discrete eco-task with a fixed point reward. A user can
// complete each challenge at most once; completion ids live on the user row.
type Challenge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:200" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Points      int       `gorm:"not null" json:"points"`
	Icon        string    `gorm:"default:'🌍';size:50" json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Assignment statuses, forward-only: assigned -> completed -> verified.
const (
	AssignmentAssigned  = "assigned"
	AssignmentCompleted = "completed"
	AssignmentVerified  = "verified"
)

// Assignment binds a challenge to a student, created by a teacher. The
// composite unique index keeps a student from being assigned the same
// challenge twice.
type Assignment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ChallengeID  uint       `gorm:"not null;uniqueIndex:idx_assignments_challenge_student" json:"challenge_id"`
	Challenge    *Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
	StudentID    uint       `gorm:"not null;uniqueIndex:idx_assignments_challenge_student" json:"student_id"`
	Student      *User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	AssignedByID uint       `gorm:"not null;index" json:"assigned_by_id"`
	AssignedBy   *User      `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
	Status       string     `gorm:"default:'assigned';size:20" json:"status"`
	DueDate      *time.Time `json:"due_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Challenge) TableName() string {
	return "challenges"
}

func (Assignment) TableName() string {
	return "assignments"
}
