// services/points.go - Eco point accounting: challenge completion, quiz
// scoring and game score submission.
package services

import (
	"errors"
	"fmt"
	"time"

	"greenspark/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrAlreadyCompleted  = errors.New("challenge already completed")
	ErrNegativeScore     = errors.New("score must not be negative")
)

// Badge thresholds, checked low to high against the user's new point total.
// A single completion can unlock several badges at once.
var badgeThresholds = []struct {
	Points int
	Name   string
}{
	{50, "Eco Starter"},
	{100, "Eco Hero"},
	{200, "Eco Champion"},
}

// QuizPassPercent is the minimum percentage that earns quiz points.
const QuizPassPercent = 80.0

type PointsService struct {
	db *gorm.DB
}

func NewPointsService(db *gorm.DB) *PointsService {
	return &PointsService{db: db}
}

type CompletionResult struct {
	EcoPoints int      `json:"ecoPoints"`
	Badges    []string `json:"badges"`
	Unlocked  []string `json:"unlocked"`
}

type QuizResult struct {
	Message        string `json:"message"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	PointsAwarded  int    `json:"pointsAwarded"`
}

type ScoreResult struct {
	Message        string `json:"message"`
	PointsAwarded  int    `json:"pointsAwarded"`
	NewTotalPoints int    `json:"newTotalPoints"`
	Score          int    `json:"score"`
}

// CompleteChallenge credits a challenge's points to the user, records the
// completion and evaluates badge unlocks, all in one transaction with the
// user row locked.
func (s *PointsService) CompleteChallenge(userID, challengeID uint) (*CompletionResult, error) {
	var result *CompletionResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.First(&challenge, challengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}

		var user models.User
		if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if user.Completed.Contains(challenge.ID) {
			return ErrAlreadyCompleted
		}

		user.EcoPoints += challenge.Points
		user.Completed = append(user.Completed, challenge.ID)
		unlocked := applyBadgeUnlocks(&user)

		if err := tx.Model(&user).Updates(map[string]interface{}{
			"eco_points": user.EcoPoints,
			"completed":  user.Completed,
			"badges":     user.Badges,
		}).Error; err != nil {
			return err
		}

		result = &CompletionResult{
			EcoPoints: user.EcoPoints,
			Badges:    []string(user.Badges),
			Unlocked:  unlocked,
		}
		return nil
	})

	return result, err
}

// SubmitQuiz scores the answers positionally against the quiz questions.
// Points are credited only on the user's first passing attempt; every
// submission is recorded.
func (s *PointsService) SubmitQuiz(quizID, userID uint, answers []string) (*QuizResult, error) {
	var result *QuizResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).First(&quiz, quizID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return err
		}

		var user models.User
		if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		score := 0
		for i, q := range quiz.Questions {
			if i < len(answers) && answers[i] == q.CorrectAnswer {
				score++
			}
		}

		total := len(quiz.Questions)
		percentage := 0.0
		if total > 0 {
			percentage = float64(score) / float64(total) * 100
		}
		passed := percentage >= QuizPassPercent

		awarded := 0
		if passed {
			var prevPasses int64
			if err := tx.Model(&models.QuizAttempt{}).
				Where("quiz_id = ? AND user_id = ? AND passed = ?", quiz.ID, userID, true).
				Count(&prevPasses).Error; err != nil {
				return err
			}
			if prevPasses == 0 {
				awarded = quiz.PointsAwarded
				if err := tx.Model(&user).
					Update("eco_points", gorm.Expr("eco_points + ?", awarded)).Error; err != nil {
					return err
				}
			}
		}

		attempt := models.QuizAttempt{
			QuizID:         quiz.ID,
			UserID:         userID,
			Score:          score,
			TotalQuestions: total,
			Percentage:     percentage,
			Passed:         passed,
			PointsAwarded:  awarded,
			CreatedAt:      time.Now(),
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		message := fmt.Sprintf("You scored %d/%d. Try again to earn the points!", score, total)
		if passed {
			message = fmt.Sprintf("Congratulations! You scored %d/%d.", score, total)
		}

		result = &QuizResult{
			Message:        message,
			Score:          score,
			TotalQuestions: total,
			PointsAwarded:  awarded,
		}
		return nil
	})

	return result, err
}

// SubmitGameScore max-merges the submitted score into the student's progress
// row and credits only the improvement over the previous best. The compare
// and the reward happen in one transaction on the locked progress row.
func (s *PointsService) SubmitGameScore(gameID, studentID uint, score int) (*ScoreResult, error) {
	if score < 0 {
		return nil, ErrNegativeScore
	}

	var result *ScoreResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGameNotFound
			}
			return err
		}

		var user models.User
		if err := lockForUpdate(tx).First(&user, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var progress models.GameProgress
		err := lockForUpdate(tx).
			Where("game_id = ? AND student_id = ?", game.ID, studentID).
			First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.GameProgress{GameID: game.ID, StudentID: studentID}
		} else if err != nil {
			return err
		}

		previous := progress.Score
		awarded := score - previous
		if awarded < 0 {
			awarded = 0
		}

		if score > progress.Score {
			progress.Score = score
		}
		progress.Completed = true

		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		if awarded > 0 {
			if err := tx.Model(&user).
				Update("eco_points", gorm.Expr("eco_points + ?", awarded)).Error; err != nil {
				return err
			}
			user.EcoPoints += awarded
		}

		result = &ScoreResult{
			Message:        fmt.Sprintf("Score submitted successfully! You earned %d Eco Points.", awarded),
			PointsAwarded:  awarded,
			NewTotalPoints: user.EcoPoints,
			Score:          progress.Score,
		}
		return nil
	})

	return result, err
}

// applyBadgeUnlocks adds every badge whose threshold the user's point total
// has crossed. Idempotent; returns only the badges added this call.
func applyBadgeUnlocks(user *models.User) []string {
	unlocked := []string{}
	for _, b := range badgeThresholds {
		if user.EcoPoints >= b.Points && !user.Badges.Contains(b.Name) {
			user.Badges = append(user.Badges, b.Name)
			unlocked = append(unlocked, b.Name)
		}
	}
	return unlocked
}

// lockForUpdate adds a row lock on Postgres. The sqlite test database
// serializes writers on its own and rejects FOR UPDATE syntax.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
