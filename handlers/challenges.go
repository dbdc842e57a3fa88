// handlers/challenges.go
package handlers

import (
	"errors"

	"greenspark/database"
	"greenspark/middleware"
	"greenspark/models"
	"greenspark/services"

	"github.com/gofiber/fiber/v2"
)

type CompleteChallengeRequest struct {
	ChallengeID uint `json:"challengeId"`
}

// GetChallenges lists every challenge. Public.
func GetChallenges(c *fiber.Ctx) error {
	db := database.GetDB()

	var challenges []models.Challenge
	if err := db.Find(&challenges).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch challenges"})
	}

	return c.JSON(challenges)
}

// CompleteChallenge credits the challenge's points to the caller and
// evaluates badge unlocks.
func CompleteChallenge(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	var req CompleteChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	svc := services.NewPointsService(database.GetDB())
	result, err := svc.CompleteChallenge(userID, req.ChallengeID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			return c.Status(400).JSON(fiber.Map{"message": "Invalid challenge"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(404).JSON(fiber.Map{"message": "User not found"})
		case errors.Is(err, services.ErrAlreadyCompleted):
			return c.Status(400).JSON(fiber.Map{"message": "Challenge already completed"})
		default:
			return c.Status(500).JSON(fiber.Map{"message": "Failed to complete challenge"})
		}
	}

	return c.JSON(result)
}
