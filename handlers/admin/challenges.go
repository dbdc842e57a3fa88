// handlers/admin/challenges.go - admin challenge management
package admin

import (
	"errors"

	"greenspark/database"
	"greenspark/models"
	"greenspark/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ChallengeRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Points      int    `json:"points" validate:"required,gt=0"`
	Icon        string `json:"icon"`
}

// GetChallenges lists every challenge for the admin panel.
func GetChallenges(c *fiber.Ctx) error {
	db := database.GetDB()

	var challenges []models.Challenge
	if err := db.Find(&challenges).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch challenges"})
	}

	return c.JSON(challenges)
}

// CreateChallenge adds a new challenge.
func CreateChallenge(c *fiber.Ctx) error {
	var req ChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": utils.ValidationMessage(err)})
	}

	challenge := models.Challenge{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Icon:        req.Icon,
	}
	if challenge.Icon == "" {
		challenge.Icon = "🌍"
	}

	db := database.GetDB()
	if err := db.Create(&challenge).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while creating challenge"})
	}

	return c.Status(201).JSON(challenge)
}

// UpdateChallenge replaces a challenge's fields.
func UpdateChallenge(c *fiber.Ctx) error {
	challengeID, err := c.ParamsInt("id")
	if err != nil || challengeID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid challenge id"})
	}

	var req ChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": utils.ValidationMessage(err)})
	}

	db := database.GetDB()

	var challenge models.Challenge
	if err := db.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Challenge not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch challenge"})
	}

	challenge.Title = req.Title
	challenge.Description = req.Description
	challenge.Points = req.Points
	if req.Icon != "" {
		challenge.Icon = req.Icon
	}

	if err := db.Save(&challenge).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to update challenge"})
	}

	return c.JSON(challenge)
}

// DeleteChallenge removes a challenge. Completion records on user rows are
// left intact; earned points are never clawed back.
func DeleteChallenge(c *fiber.Ctx) error {
	challengeID, err := c.ParamsInt("id")
	if err != nil || challengeID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid challenge id"})
	}

	db := database.GetDB()

	res := db.Delete(&models.Challenge{}, challengeID)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to delete challenge"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Challenge not found"})
	}

	return c.JSON(fiber.Map{"message": "Challenge deleted successfully"})
}
