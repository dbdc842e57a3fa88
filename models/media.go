// models/media.go - uploaded learning material
package models

import (
	"time"
)

type Video struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null;size:200" json:"title"`
	Description  string    `gorm:"not null;type:text" json:"description"`
	URL          string    `gorm:"not null" json:"url"`
	UploadedByID uint      `gorm:"not null;index" json:"uploaded_by_id"`
	UploadedBy   *User     `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Book struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null;size:200" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	FileURL      string    `gorm:"not null" json:"fileUrl"`
	UploadedByID uint      `gorm:"not null;index" json:"uploaded_by_id"`
	UploadedBy   *User     `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Note struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null;size:200" json:"title"`
	Content      string    `gorm:"not null;type:text" json:"content"`
	UploadedByID uint      `gorm:"not null;index" json:"uploaded_by_id"`
	UploadedBy   *User     `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}

func (Book) TableName() string {
	return "books"
}

func (Note) TableName() string {
	return "notes"
}
