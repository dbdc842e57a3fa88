// models/game.go
package models

import (
	"time"
)

// Game is a browser mini-game. The simulation parameters (pollution goal,
// target health, duration) are handed to the client; the server only ever
// sees the final submitted score.
type Game struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"uniqueIndex;not null;size:200" json:"title"`
	Description      string    `gorm:"not null;type:text" json:"description"`
	BasePoints       int       `gorm:"default:10" json:"basePoints"`
	MaxPollutionGoal int       `gorm:"default:20" json:"maxPollutionGoal"`
	TargetHealth     int       `gorm:"default:90" json:"targetHealth"`
	GameDuration     int       `gorm:"default:100" json:"gameDuration"`
	GameURL          string    `gorm:"not null" json:"gameUrl"`
	UploadedByID     uint      `gorm:"not null;index" json:"uploaded_by_id"`
	UploadedBy       *User     `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// GameProgress is the per-(game,student) high-water-mark score. Score only
// ever increases; the unique index keeps one row per pair.
type GameProgress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GameID    uint      `gorm:"not null;uniqueIndex:idx_game_progress_game_student" json:"game_id"`
	Game      *Game     `gorm:"foreignKey:GameID" json:"game,omitempty"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_game_progress_game_student" json:"student_id"`
	Student   *User     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Score     int       `gorm:"default:0" json:"score"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Game) TableName() string {
	return "games"
}

func (GameProgress) TableName() string {
	return "game_progress"
}
