package service

import (
	"context"
	"time"

	"quizgen-service/internal/models"
	"quizgen-service/internal/repository"
)

// AttemptStore is the persistence contract for quiz attempts.
type AttemptStore interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) (*models.QuizAttempt, error)
	FindByUser(ctx context.Context, userID, quizID, userProgramID string) ([]models.QuizAttempt, error)
}

// AttemptScorer records submissions and computes scores against the stored
// answer key.
type AttemptScorer struct {
	attempts AttemptStore
	quizzes  QuizStore
}

func NewAttemptScorer(attempts AttemptStore, quizzes QuizStore) *AttemptScorer {
	return &AttemptScorer{attempts: attempts, quizzes: quizzes}
}

// CreateAttempt scores the submitted answers against the quiz's answer key
// and persists the attempt fully completed in one step. Answers referencing
// out-of-range question indices are ignored; a question index is scored at
// most once. Soft-deleted quizzes cannot be attempted.
func (s *AttemptScorer) CreateAttempt(ctx context.Context, userID, quizID, userProgramID string, answers []models.AttemptAnswer) (*models.QuizAttempt, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.IsDeleted {
		return nil, repository.ErrNotFound
	}

	maxScore := len(quiz.Questions)
	score := 0
	seen := make(map[int]bool, len(answers))
	for _, answer := range answers {
		idx := answer.QuestionIndex
		if idx < 0 || idx >= maxScore || seen[idx] {
			continue
		}
		seen[idx] = true
		if answer.SelectedAnswer == quiz.Questions[idx].CorrectAnswer {
			score++
		}
	}

	percentage := 0
	if maxScore > 0 {
		percentage = score * 100 / maxScore
	}

	now := time.Now().UTC()
	attempt := &models.QuizAttempt{
		QuizID:        quizID,
		UserID:        userID,
		UserProgramID: userProgramID,
		Answers:       answers,
		Score:         score,
		MaxScore:      maxScore,
		Percentage:    percentage,
		StartedAt:     now,
		CompletedAt:   now,
		IsCompleted:   true,
	}
	return s.attempts.Create(ctx, attempt)
}

func (s *AttemptScorer) GetUserAttempts(ctx context.Context, userID, quizID, userProgramID string) ([]models.QuizAttempt, error) {
	return s.attempts.FindByUser(ctx, userID, quizID, userProgramID)
}
