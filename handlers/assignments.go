// handlers/assignments.go - student-facing assignment routes
package handlers

import (
	"errors"

	"greenspark/database"
	"greenspark/middleware"
	"greenspark/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetMyAssignments lists the caller's open assignments with challenge and
// teacher details preloaded.
func GetMyAssignments(c *fiber.Ctx) error {
	studentID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	db := database.GetDB()

	var assignments []models.Assignment
	if err := db.Where("student_id = ? AND status = ?", studentID, models.AssignmentAssigned).
		Preload("Challenge").
		Preload("AssignedBy").
		Find(&assignments).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching assignments"})
	}

	return c.JSON(assignments)
}

// CompleteAssignment lets the assigned student mark their assignment
// completed. Verification is the teacher's move.
func CompleteAssignment(c *fiber.Ctx) error {
	studentID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	assignmentID, err := c.ParamsInt("id")
	if err != nil || assignmentID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid assignment id"})
	}

	db := database.GetDB()

	var assignment models.Assignment
	if err := db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Assignment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Server error"})
	}

	if assignment.StudentID != studentID {
		return c.Status(403).JSON(fiber.Map{"message": "This assignment belongs to another student"})
	}

	if assignment.Status != models.AssignmentAssigned {
		return c.Status(400).JSON(fiber.Map{"message": "Assignment is not open"})
	}

	if err := db.Model(&assignment).Update("status", models.AssignmentCompleted).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to update assignment"})
	}

	return c.JSON(fiber.Map{"message": "Assignment marked as completed", "assignment": assignment})
}
