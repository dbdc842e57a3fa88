// handlers/games.go - mini-game catalogue and score submission
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

type CreateGameRequest struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description" validate:"required"`
	BasePoints       int    `json:"basePoints"`
	MaxPollutionGoal int    `json:"maxPollutionGoal"`
	TargetHealth     int    `json:"targetHealth"`
	GameDuration     int    `json:"gameDuration"`
	GameURL          string `json:"gameUrl" validate:"required"`
}

type SubmitScoreRequest struct {
	Score *int `json:"score"`
}

// CreateGame registers a new mini-game. Titles are unique.
func CreateGame(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	var req CreateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": utils.ValidationMessage(err)})
	}

	db := database.GetDB()

	var existing models.Game
	if err := db.Where("title = ?", req.Title).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{"message": "A game with this title already exists"})
	}

	game := models.Game{
		Title:            req.Title,
		Description:      req.Description,
		BasePoints:       req.BasePoints,
		MaxPollutionGoal: req.MaxPollutionGoal,
		TargetHealth:     req.TargetHealth,
		GameDuration:     req.GameDuration,
		GameURL:          req.GameURL,
		UploadedByID:     userID,
	}
	if game.BasePoints <= 0 {
		game.BasePoints = 10
	}
	if game.MaxPollutionGoal <= 0 {
		game.MaxPollutionGoal = 20
	}
	if game.TargetHealth <= 0 {
		game.TargetHealth = 90
	}
	if game.GameDuration <= 0 {
		game.GameDuration = 100
	}

	if err := db.Create(&game).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while creating game"})
	}

	return c.Status(201).JSON(game)
}

// GetGames lists all games, newest first. Public.
func GetGames(c *fiber.Ctx) error {
	db := database.GetDB()

	var games []models.Game
	if err := db.Order("created_at DESC").Find(&games).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching games"})
	}

	return c.JSON(games)
}

// GetGame returns a single game. Public.
func GetGame(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid game id"})
	}

	db := database.GetDB()

	var game models.Game
	if err := db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Game not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching game"})
	}

	return c.JSON(game)
}

// DeleteGame removes a game and its progress records.
func DeleteGame(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid game id"})
	}

	db := database.GetDB()

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", gameID).Delete(&models.GameProgress{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Game{}, gameID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"message": "Game not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while deleting game"})
	}

	return c.JSON(fiber.Map{"message": "Game deleted"})
}

// SubmitScore records a score for the caller and credits the improvement
// over their previous best.
func SubmitScore(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid game id"})
	}

	var req SubmitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.Score == nil {
		return c.Status(400).JSON(fiber.Map{"message": "Score is required"})
	}

	svc := services.NewPointsService(database.GetDB())
	result, err := svc.SubmitGameScore(uint(gameID), userID, *req.Score)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNegativeScore):
			return c.Status(400).JSON(fiber.Map{"message": "Score must not be negative"})
		case errors.Is(err, services.ErrGameNotFound):
			return c.Status(404).JSON(fiber.Map{"message": "Game not found"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(404).JSON(fiber.Map{"message": "User not found"})
		default:
			return c.Status(500).JSON(fiber.Map{"message": "Server error while submitting score"})
		}
	}

	return c.JSON(result)
}
