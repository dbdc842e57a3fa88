// handlers/teacher.go - teacher panel: student listings and assignments
package handlers

import (
	"errors"
	"time"

	"greenspark/database"
	"greenspark/middleware"
	"greenspark/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateAssignmentRequest struct {
	ChallengeID uint       `json:"challengeId" validate:"required"`
	StudentID   uint       `json:"studentId" validate:"required"`
	DueDate     *time.Time `json:"dueDate"`
}

type StudentSummary struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	EcoPoints int               `json:"ecoPoints"`
	Badges    models.StringList `json:"badges"`
}

// GetStudents lists every student account.
func GetStudents(c *fiber.Ctx) error {
	db := database.GetDB()

	var students []StudentSummary
	if err := db.Model(&models.User{}).
		Select("id", "name", "email", "eco_points", "badges").
		Where("role = ?", models.RoleStudent).
		Find(&students).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch students"})
	}

	return c.JSON(students)
}

// GetAssignedStudents lists the distinct students this teacher has created
// assignments for.
func GetAssignedStudents(c *fiber.Ctx) error {
	teacherID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	db := database.GetDB()

	var students []StudentSummary
	if err := db.Model(&models.User{}).
		Select("DISTINCT users.id", "users.name", "users.email", "users.eco_points", "users.badges").
		Joins("JOIN assignments ON assignments.student_id = users.id").
		Where("assignments.assigned_by_id = ?", teacherID).
		Find(&students).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching assigned students"})
	}

	return c.JSON(students)
}

// CreateAssignment assigns a challenge to a student. The (challenge,student)
// pair is unique.
func CreateAssignment(c *fiber.Ctx) error {
	teacherID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	var req CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.ChallengeID == 0 || req.StudentID == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "challengeId and studentId are required"})
	}

	db := database.GetDB()

	var challenge models.Challenge
	if err := db.First(&challenge, req.ChallengeID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Challenge not found"})
	}

	var student models.User
	if err := db.Where("id = ? AND role = ?", req.StudentID, models.RoleStudent).
		First(&student).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Student not found"})
	}

	var existing models.Assignment
	if err := db.Where("challenge_id = ? AND student_id = ?", req.ChallengeID, req.StudentID).
		First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"message": "This challenge has already been assigned to this student."})
	}

	assignment := models.Assignment{
		ChallengeID:  req.ChallengeID,
		StudentID:    req.StudentID,
		AssignedByID: teacherID,
		Status:       models.AssignmentAssigned,
		DueDate:      req.DueDate,
	}

	if err := db.Create(&assignment).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while creating assignment"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Challenge assigned successfully.",
		"assignment": assignment,
	})
}

// GetStudentAssignments lists every assignment for one student, with the
// challenge and the assigning teacher preloaded.
func GetStudentAssignments(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("studentId")
	if err != nil || studentID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid student id"})
	}

	db := database.GetDB()

	var assignments []models.Assignment
	if err := db.Where("student_id = ?", studentID).
		Preload("Challenge").
		Preload("AssignedBy").
		Find(&assignments).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching assignments"})
	}

	return c.JSON(assignments)
}

// VerifyAssignment lets the assigning teacher mark a completed assignment
// verified. Transitions only move forward.
func VerifyAssignment(c *fiber.Ctx) error {
	teacherID, err := middleware.GetUserID(c)
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

	if assignment.AssignedByID != teacherID {
		return c.Status(403).JSON(fiber.Map{"message": "Only the assigning teacher can verify this assignment"})
	}

	if assignment.Status != models.AssignmentCompleted {
		return c.Status(400).JSON(fiber.Map{"message": "Only completed assignments can be verified"})
	}

	if err := db.Model(&assignment).Update("status", models.AssignmentVerified).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to verify assignment"})
	}

	return c.JSON(fiber.Map{"message": "Assignment verified", "assignment": assignment})
}
