// models/user.go
package models

import (
	"time"
)

// User roles. Registration always creates students; teacher and admin
// accounts are created through the admin panel.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null;size:100" json:"name"`
	Email    string  `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password string  `gorm:"not null" json:"-"`
	Role     string  `gorm:"default:'student';size:20" json:"role"`
	Avatar   *string `json:"avatar"`

	// Gamification
	EcoPoints int        `gorm:"default:0" json:"ecoPoints"`
	Badges    StringList `gorm:"type:text" json:"badges"`
	Completed IDList     `gorm:"type:text" json:"completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
