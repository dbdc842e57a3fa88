// handlers/media.go - videos, books and notes, with file upload
package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"greenspark/database"
	"greenspark/middleware"
	"greenspark/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UploadDir returns the directory uploaded files are stored in, served
// publicly under /uploads.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// saveUpload stores a multipart file under the upload dir and returns its
// public URL. Filename is timestamp plus a uuid suffix plus the original
// extension, so concurrent uploads never collide.
func saveUpload(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(fileHeader.Filename)
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String()[:8], ext)

	if err := os.MkdirAll(UploadDir(), 0o755); err != nil {
		return "", err
	}
	if err := c.SaveFile(fileHeader, filepath.Join(UploadDir(), name)); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}

// CreateVideo stores a video record from either a direct URL or an uploaded
// file.
func CreateVideo(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	title := c.FormValue("title")
	description := c.FormValue("description")
	url := c.FormValue("url")

	if uploaded, err := saveUpload(c); err == nil {
		url = uploaded
	}

	if title == "" || description == "" || url == "" {
		return c.Status(400).JSON(fiber.Map{"message": "title, description and a url or file are required"})
	}

	video := models.Video{
		Title:        title,
		Description:  description,
		URL:          url,
		UploadedByID: userID,
	}

	db := database.GetDB()
	if err := db.Create(&video).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while uploading video"})
	}

	return c.Status(201).JSON(video)
}

// GetVideos lists all videos, newest first. Public.
func GetVideos(c *fiber.Ctx) error {
	db := database.GetDB()

	var videos []models.Video
	if err := db.Order("created_at DESC").Find(&videos).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching videos"})
	}

	return c.JSON(videos)
}

// GetVideo returns a single video. Public.
func GetVideo(c *fiber.Ctx) error {
	videoID, err := c.ParamsInt("id")
	if err != nil || videoID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid video id"})
	}

	db := database.GetDB()

	var video models.Video
	if err := db.First(&video, videoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Video not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching video"})
	}

	return c.JSON(video)
}

// DeleteVideo removes a video record.
func DeleteVideo(c *fiber.Ctx) error {
	videoID, err := c.ParamsInt("id")
	if err != nil || videoID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid video id"})
	}

	db := database.GetDB()
	res := db.Delete(&models.Video{}, videoID)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while deleting video"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Video not found"})
	}

	return c.JSON(fiber.Map{"message": "Video deleted"})
}

// CreateBook stores a book record from either a direct file URL or an
// uploaded file.
func CreateBook(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	title := c.FormValue("title")
	description := c.FormValue("description")
	fileURL := c.FormValue("fileUrl")

	if uploaded, err := saveUpload(c); err == nil {
		fileURL = uploaded
	}

	if title == "" || fileURL == "" {
		return c.Status(400).JSON(fiber.Map{"message": "title and a fileUrl or file are required"})
	}

	book := models.Book{
		Title:        title,
		Description:  description,
		FileURL:      fileURL,
		UploadedByID: userID,
	}

	db := database.GetDB()
	if err := db.Create(&book).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while uploading book"})
	}

	return c.Status(201).JSON(book)
}

// GetBooks lists all books, newest first. Public.
func GetBooks(c *fiber.Ctx) error {
	db := database.GetDB()

	var books []models.Book
	if err := db.Order("created_at DESC").Find(&books).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching books"})
	}

	return c.JSON(books)
}

// DeleteBook removes a book record.
func DeleteBook(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil || bookID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid book id"})
	}

	db := database.GetDB()
	res := db.Delete(&models.Book{}, bookID)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while deleting book"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Book not found"})
	}

	return c.JSON(fiber.Map{"message": "Book deleted"})
}

// CreateNote stores a text note.
func CreateNote(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	var req NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.Title == "" || req.Content == "" {
		return c.Status(400).JSON(fiber.Map{"message": "title and content are required"})
	}

	note := models.Note{
		Title:        req.Title,
		Content:      req.Content,
		UploadedByID: userID,
	}

	db := database.GetDB()
	if err := db.Create(&note).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while uploading note"})
	}

	return c.Status(201).JSON(note)
}

// GetNotes lists all notes, newest first. Public.
func GetNotes(c *fiber.Ctx) error {
	db := database.GetDB()

	var notes []models.Note
	if err := db.Order("created_at DESC").Find(&notes).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while fetching notes"})
	}

	return c.JSON(notes)
}

// DeleteNote removes a note.
func DeleteNote(c *fiber.Ctx) error {
	noteID, err := c.ParamsInt("id")
	if err != nil || noteID <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid note id"})
	}

	db := database.GetDB()
	res := db.Delete(&models.Note{}, noteID)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error while deleting note"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Note not found"})
	}

	return c.JSON(fiber.Map{"message": "Note deleted"})
}
