// handlers/admin/users.go - admin user management
package admin

import (
	"errors"

	"greenspark/database"
	"greenspark/models"
	"greenspark/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=student teacher admin"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// GetUsers lists every user, minus password hashes.
func GetUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch users"})
	}

	return c.JSON(users)
}

// GetUser returns one user.
func GetUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid user id"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch user"})
	}

	return c.JSON(user)
}

// CreateUser creates an account with an explicit role. This is the only way
// teacher and admin accounts come into existence.
func CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": utils.ValidationMessage(err)})
	}

	db := database.GetDB()

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"message": "A user with this email already exists."})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to hash password"})
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      req.Role,
		Badges:    models.StringList{},
		Completed: models.IDList{},
	}

	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while creating user"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "User created successfully.", "user": user})
}

// UpdateUser applies a partial update to name, email or role.
func UpdateUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid user id"})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if req.Role != "" && req.Role != models.RoleStudent &&
		req.Role != models.RoleTeacher && req.Role != models.RoleAdmin {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid role"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch user"})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	if err := db.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to update user"})
	}

	return c.JSON(fiber.Map{"message": "User updated successfully", "user": user})
}

// DeleteUser hard-deletes a user.
func DeleteUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid user id"})
	}

	db := database.GetDB()

	res := db.Delete(&models.User{}, userID)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to delete user"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
