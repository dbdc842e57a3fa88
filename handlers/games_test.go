package handlers

import (
	"fmt"
	"testing"

	"greenspark/database"
	"greenspark/models"
)

func seedGame(t *testing.T, uploader models.User) models.Game {
	t.Helper()

	game := models.Game{
		Title:            "EcoCity Simulator",
		Description:      "Keep the city green",
		BasePoints:       10,
		MaxPollutionGoal: 20,
		TargetHealth:     90,
		GameDuration:     100,
		GameURL:          "/games/ecocity",
		UploadedByID:     uploader.ID,
	}
	mustCreate(t, &game)
	return game
}

func TestSubmitScoreHighWaterMark(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "Tea", "t@x.com", "pw1234", models.RoleTeacher)
	student := createUser(t, "Stu", "s@x.com", "pw1234", models.RoleStudent)
	token := tokenFor(t, student)
	game := seedGame(t, teacher)
	path := fmt.Sprintf("/api/games/%d/submit-score", game.ID)

	tests := []struct {
		name          string
		score         int
		wantAwarded   float64
		wantBest      float64
		wantEcoPoints int
	}{
		{"first submission credits full score", 40, 40, 40, 40},
		{"improvement credits only the delta", 70, 30, 70, 70},
		{"regression credits nothing", 50, 0, 70, 70},
		{"equal score credits nothing", 70, 0, 70, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, "POST", path, token, map[string]int{"score": tt.score})
			wantStatus(t, status, 200, body)

			if body["pointsAwarded"] != tt.wantAwarded {
				t.Errorf("pointsAwarded = %v, want %v", body["pointsAwarded"], tt.wantAwarded)
			}
			if body["score"] != tt.wantBest {
				t.Errorf("score = %v, want %v", body["score"], tt.wantBest)
			}

			updated := reloadUser(t, student.ID)
			if updated.EcoPoints != tt.wantEcoPoints {
				t.Errorf("ecoPoints = %d, want %d", updated.EcoPoints, tt.wantEcoPoints)
			}

			var progress models.GameProgress
			if err := database.GetDB().
				Where("game_id = ? AND student_id = ?", game.ID, student.ID).
				First(&progress).Error; err != nil {
				t.Fatalf("progress row missing: %v", err)
			}
			if progress.Score != int(tt.wantBest) {
				t.Errorf("stored score = %d, want %d", progress.Score, int(tt.wantBest))
			}
			if !progress.Completed {
				t.Error("progress not marked completed")
			}
		})
	}

	// still exactly one progress row for the pair
	var rows int64
	database.GetDB().Model(&models.GameProgress{}).
		Where("game_id = ? AND student_id = ?", game.ID, student.ID).Count(&rows)
	if rows != 1 {
		t.Errorf("progress rows = %d, want 1", rows)
	}
}

func TestSubmitScoreValidation(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "Tea", "t@x.com", "pw1234", models.RoleTeacher)
	student := createUser(t, "Stu", "s@x.com", "pw1234", models.RoleStudent)
	token := tokenFor(t, student)
	game := seedGame(t, teacher)

	status, body := doJSON(t, app, "POST", fmt.Sprintf("/api/games/%d/submit-score", game.ID), token,
		map[string]interface{}{})
	wantStatus(t, status, 400, body)
	if body["message"] != "Score is required" {
		t.Errorf("message = %v", body["message"])
	}

	status, body = doJSON(t, app, "POST", fmt.Sprintf("/api/games/%d/submit-score", game.ID), token,
		map[string]int{"score": -5})
	wantStatus(t, status, 400, body)

	status, body = doJSON(t, app, "POST", "/api/games/9999/submit-score", token,
		map[string]int{"score": 10})
	wantStatus(t, status, 404, body)
}

func TestSubmitScoreOfZeroIsAccepted(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "Tea", "t@x.com", "pw1234", models.RoleTeacher)
	student := createUser(t, "Stu", "s@x.com", "pw1234", models.RoleStudent)
	game := seedGame(t, teacher)

	status, body := doJSON(t, app, "POST", fmt.Sprintf("/api/games/%d/submit-score", game.ID),
		tokenFor(t, student), map[string]int{"score": 0})
	wantStatus(t, status, 200, body)
	if body["pointsAwarded"] != float64(0) {
		t.Errorf("pointsAwarded = %v, want 0", body["pointsAwarded"])
	}
}

func TestCreateGameRequiresRoleAndUniqueTitle(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "Tea", "t@x.com", "pw1234", models.RoleTeacher)
	student := createUser(t, "Stu", "s@x.com", "pw1234", models.RoleStudent)

	payload := map[string]interface{}{
		"title":       "RecycleRush",
		"description": "Sort fast",
		"gameUrl":     "/games/recycle-rush",
	}

	status, body := doJSON(t, app, "POST", "/api/games", tokenFor(t, student), payload)
	wantStatus(t, status, 403, body)

	status, body = doJSON(t, app, "POST", "/api/games", tokenFor(t, teacher), payload)
	wantStatus(t, status, 201, body)

	// defaults fill in the simulation parameters
	if body["basePoints"] != float64(10) || body["gameDuration"] != float64(100) {
		t.Errorf("defaults not applied: %v", body)
	}

	status, body = doJSON(t, app, "POST", "/api/games", tokenFor(t, teacher), payload)
	wantStatus(t, status, 409, body)
}

func TestDeleteGameRemovesProgress(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "Tea", "t@x.com", "pw1234", models.RoleTeacher)
	student := createUser(t, "Stu", "s@x.com", "pw1234", models.RoleStudent)
	game := seedGame(t, teacher)

	status, body := doJSON(t, app, "POST", fmt.Sprintf("/api/games/%d/submit-score", game.ID),
		tokenFor(t, student), map[string]int{"score": 10})
	wantStatus(t, status, 200, body)

	status, body = doJSON(t, app, "DELETE", fmt.Sprintf("/api/games/%d", game.ID),
		tokenFor(t, teacher), nil)
	wantStatus(t, status, 200, body)

	var rows int64
	database.GetDB().Model(&models.GameProgress{}).Where("game_id = ?", game.ID).Count(&rows)
	if rows != 0 {
		t.Errorf("progress rows after delete = %d, want 0", rows)
	}
}
