// handlers/leaderboard.go
package handlers

import (
	"greenspark/database"
	"greenspark/models"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardEntry struct {
	Name      string            `json:"name"`
	EcoPoints int               `json:"ecoPoints"`
	Badges    models.StringList `json:"badges"`
	Role      string            `json:"role"`
}

// GetLeaderboard returns the top 10 users by eco points. Ties break on
// account age so the order is stable.
func GetLeaderboard(c *fiber.Ctx) error {
	db := database.GetDB()

	var entries []LeaderboardEntry
	if err := db.Model(&models.User{}).
		Select("name", "eco_points", "badges", "role").
		Order("eco_points DESC, created_at ASC").
		Limit(10).
		Find(&entries).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(entries)
}
