package services

import (
	"errors"
	"testing"

	"greenspark/database"
	"greenspark/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*PointsService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.MigrateModels(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewPointsService(db), db
}

func seedUser(t *testing.T, db *gorm.DB, points int) models.User {
	t.Helper()

	user := models.User{
		Name:      "Stu",
		Email:     "stu@x.com",
		Password:  "irrelevant",
		Role:      models.RoleStudent,
		EcoPoints: points,
		Badges:    models.StringList{},
		Completed: models.IDList{},
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestBadgeUnlocks(t *testing.T) {
	tests := []struct {
		name         string
		start        int
		points       int
		wantUnlocked []string
	}{
		{"below first threshold", 0, 49, []string{}},
		{"exactly at threshold", 0, 50, []string{"Eco Starter"}},
		{"two thresholds in one completion", 0, 150, []string{"Eco Starter", "Eco Hero"}},
		{"all three at once", 0, 250, []string{"Eco Starter", "Eco Hero", "Eco Champion"}},
		{"already holding lower badges", 120, 100, []string{"Eco Champion"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newTestService(t)
			user := seedUser(t, db, tt.start)
			if tt.start >= 50 {
				// backfill badges the user would already hold
				u := user
				u.EcoPoints = tt.start
				applyBadgeUnlocks(&u)
				if err := db.Model(&user).Update("badges", u.Badges).Error; err != nil {
					t.Fatalf("backfill badges: %v", err)
				}
			}
			challenge := models.Challenge{Title: "C", Points: tt.points}
			if err := db.Create(&challenge).Error; err != nil {
				t.Fatalf("seed challenge: %v", err)
			}

			result, err := svc.CompleteChallenge(user.ID, challenge.ID)
			if err != nil {
				t.Fatalf("CompleteChallenge: %v", err)
			}

			if len(result.Unlocked) != len(tt.wantUnlocked) {
				t.Fatalf("unlocked = %v, want %v", result.Unlocked, tt.wantUnlocked)
			}
			for i, name := range tt.wantUnlocked {
				if result.Unlocked[i] != name {
					t.Errorf("unlocked[%d] = %q, want %q", i, result.Unlocked[i], name)
				}
			}
			if result.EcoPoints != tt.start+tt.points {
				t.Errorf("ecoPoints = %d, want %d", result.EcoPoints, tt.start+tt.points)
			}
		})
	}
}

func TestCompleteChallengeIsIdempotentPerChallenge(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, 0)
	challenge := models.Challenge{Title: "C", Points: 10}
	if err := db.Create(&challenge).Error; err != nil {
		t.Fatalf("seed challenge: %v", err)
	}

	if _, err := svc.CompleteChallenge(user.ID, challenge.ID); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if _, err := svc.CompleteChallenge(user.ID, challenge.ID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second completion err = %v, want ErrAlreadyCompleted", err)
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.EcoPoints != 10 {
		t.Errorf("ecoPoints = %d, want 10", fresh.EcoPoints)
	}
}

func TestSubmitGameScoreDelta(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, 0)
	game := models.Game{Title: "G", Description: "d", GameURL: "/g", UploadedByID: user.ID}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("seed game: %v", err)
	}

	steps := []struct {
		score       int
		wantAwarded int
		wantBest    int
	}{
		{40, 40, 40},
		{70, 30, 70},
		{50, 0, 70},
	}
	for _, step := range steps {
		result, err := svc.SubmitGameScore(game.ID, user.ID, step.score)
		if err != nil {
			t.Fatalf("SubmitGameScore(%d): %v", step.score, err)
		}
		if result.PointsAwarded != step.wantAwarded || result.Score != step.wantBest {
			t.Errorf("score %d: awarded=%d best=%d, want %d/%d",
				step.score, result.PointsAwarded, result.Score, step.wantAwarded, step.wantBest)
		}
	}

	if _, err := svc.SubmitGameScore(game.ID, user.ID, -1); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("negative score err = %v, want ErrNegativeScore", err)
	}
	if _, err := svc.SubmitGameScore(9999, user.ID, 1); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("missing game err = %v, want ErrGameNotFound", err)
	}
}

func TestSubmitQuizFirstPassOnly(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db, 0)

	lesson := models.Lesson{Title: "L", Category: models.CategoryWaste, Content: "c"}
	if err := db.Create(&lesson).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	quiz := models.Quiz{LessonID: lesson.ID, PointsAwarded: 10}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	for i := 0; i < 5; i++ {
		q := models.QuizQuestion{
			QuizID:        quiz.ID,
			Position:      i,
			Text:          "q",
			Options:       models.StringList{"a", "b"},
			CorrectAnswer: "a",
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}

	pass := []string{"a", "a", "a", "a", "a"}
	fail := []string{"b", "b", "b", "b", "b"}

	result, err := svc.SubmitQuiz(quiz.ID, user.ID, fail)
	if err != nil {
		t.Fatalf("failing attempt: %v", err)
	}
	if result.PointsAwarded != 0 {
		t.Errorf("failing attempt awarded %d", result.PointsAwarded)
	}

	result, err = svc.SubmitQuiz(quiz.ID, user.ID, pass)
	if err != nil {
		t.Fatalf("passing attempt: %v", err)
	}
	if result.PointsAwarded != 10 {
		t.Errorf("first pass awarded %d, want 10", result.PointsAwarded)
	}

	result, err = svc.SubmitQuiz(quiz.ID, user.ID, pass)
	if err != nil {
		t.Fatalf("repeat pass: %v", err)
	}
	if result.PointsAwarded != 0 {
		t.Errorf("repeat pass awarded %d, want 0", result.PointsAwarded)
	}

	var attempts int64
	db.Model(&models.QuizAttempt{}).Where("user_id = ?", user.ID).Count(&attempts)
	if attempts != 3 {
		t.Errorf("attempts recorded = %d, want 3", attempts)
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.EcoPoints != 10 {
		t.Errorf("ecoPoints = %d, want 10", fresh.EcoPoints)
	}
}
