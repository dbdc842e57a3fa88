// handlers/routes.go - API route table
package handlers

import (
	"greenspark/handlers/admin"
	"greenspark/middleware"
	"greenspark/models"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts every API route group. Split out from main so tests
// can build the full app without starting a listener.
func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimit())
	authGroup.Post("/register", Register)
	authGroup.Post("/login", Login)
	authGroup.Post("/logout", Logout)
	authGroup.Get("/profile", middleware.Protected, GetProfile)
	authGroup.Put("/profile", middleware.Protected, UpdateProfile)

	// Challenge routes
	api.Get("/challenges", GetChallenges)
	api.Post("/challenges/complete", middleware.Protected, CompleteChallenge)

	// Leaderboard
	api.Get("/leaderboard", GetLeaderboard)

	// Teacher routes
	teacherGroup := api.Group("/teacher")
	teacherGroup.Use(middleware.Protected, middleware.RequireRoles(models.RoleTeacher))
	teacherGroup.Get("/students", GetStudents)
	teacherGroup.Get("/assigned-students", GetAssignedStudents)
	teacherGroup.Post("/assignments", CreateAssignment)
	teacherGroup.Get("/students/:studentId/assignments", GetStudentAssignments)
	teacherGroup.Put("/assignments/:id/verify", VerifyAssignment)

	// Student assignment routes
	assignmentGroup := api.Group("/assignments")
	assignmentGroup.Use(middleware.Protected)
	assignmentGroup.Get("/my-assignments", GetMyAssignments)
	assignmentGroup.Put("/:id/complete", CompleteAssignment)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.Protected, middleware.RequireRoles(models.RoleAdmin))
	adminGroup.Get("/users", admin.GetUsers)
	adminGroup.Post("/users", admin.CreateUser)
	adminGroup.Get("/users/:id", admin.GetUser)
	adminGroup.Put("/users/:id", admin.UpdateUser)
	adminGroup.Delete("/users/:id", admin.DeleteUser)
	adminGroup.Get("/challenges", admin.GetChallenges)
	adminGroup.Post("/challenges", admin.CreateChallenge)
	adminGroup.Put("/challenges/:id", admin.UpdateChallenge)
	adminGroup.Delete("/challenges/:id", admin.DeleteChallenge)

	// Learn routes
	learnGroup := api.Group("/learn")
	learnGroup.Get("/lessons", GetLessons)
	learnGroup.Get("/lessons/:id", middleware.Protected, GetLesson)
	learnGroup.Post("/quizzes/:id/submit", middleware.Protected, SubmitQuiz)

	learnAdmin := learnGroup.Group("/admin")
	learnAdmin.Use(middleware.Protected, middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin))
	learnAdmin.Get("/lessons", GetAdminLessons)
	learnAdmin.Post("/lessons", CreateLesson)
	learnAdmin.Put("/lessons/:id", UpdateLesson)
	learnAdmin.Delete("/lessons/:id", DeleteLesson)

	// Media routes
	mediaGroup := api.Group("/media")
	mediaGroup.Get("/videos", GetVideos)
	mediaGroup.Get("/videos/:id", GetVideo)
	mediaGroup.Get("/books", GetBooks)
	mediaGroup.Get("/notes", GetNotes)

	mediaWrite := middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin)
	mediaGroup.Post("/videos", middleware.Protected, mediaWrite, CreateVideo)
	mediaGroup.Delete("/videos/:id", middleware.Protected, mediaWrite, DeleteVideo)
	mediaGroup.Post("/books", middleware.Protected, mediaWrite, CreateBook)
	mediaGroup.Delete("/books/:id", middleware.Protected, mediaWrite, DeleteBook)
	mediaGroup.Post("/notes", middleware.Protected, mediaWrite, CreateNote)
	mediaGroup.Delete("/notes/:id", middleware.Protected, mediaWrite, DeleteNote)

	// Game routes
	gameGroup := api.Group("/games")
	gameGroup.Get("/", GetGames)
	gameGroup.Post("/", middleware.Protected, middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), CreateGame)
	gameGroup.Post("/:id/submit-score", middleware.Protected, SubmitScore)
	gameGroup.Get("/:id", GetGame)
	gameGroup.Delete("/:id", middleware.Protected, middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), DeleteGame)
}
