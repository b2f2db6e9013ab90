package service

import (
	"context"
	"time"

	"quizgen-service/internal/models"
)

// QuizStore is the persistence contract for quiz documents. Implemented by
// repository.QuizRepository; tests substitute an in-memory fake.
type QuizStore interface {
	Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	FindByCourse(ctx context.Context, courseID, moduleCode string) ([]models.Quiz, error)
	Update(ctx context.Context, id string, update models.QuizUpdate) (*models.Quiz, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	SoftDeleteBatch(ctx context.Context, courseID, moduleCode string) (int64, error)
}

type QuizService struct {
	store QuizStore
}

func NewQuizService(store QuizStore) *QuizService {
	return &QuizService{store: store}
}

func (s *QuizService) CreateQuiz(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	if quiz.Difficulty == "" {
		quiz.Difficulty = "medium"
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, quiz)
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	return s.store.FindByID(ctx, id)
}

func (s *QuizService) ListByCourse(ctx context.Context, courseID, moduleCode string) ([]models.Quiz, error) {
	return s.store.FindByCourse(ctx, courseID, moduleCode)
}

func (s *QuizService) UpdateQuiz(ctx context.Context, id string, update models.QuizUpdate) (*models.Quiz, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, update)
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id string) (bool, error) {
	return s.store.SoftDelete(ctx, id)
}

// CourseStats summarizes the active quizzes of a course.
type CourseStats struct {
	TotalQuizzes            int            `json:"total_quizzes"`
	TotalQuestions          int            `json:"total_questions"`
	DifficultyDistribution  map[string]int `json:"difficulty_distribution"`
	ModulesWithQuizzes      int            `json:"modules_with_quizzes"`
	AverageQuestionsPerQuiz float64        `json:"average_questions_per_quiz"`
	LastGenerated           string         `json:"last_generated,omitempty"`
}

func (s *QuizService) CourseStats(ctx context.Context, courseID string) (*CourseStats, error) {
	quizzes, err := s.store.FindByCourse(ctx, courseID, "")
	if err != nil {
		return nil, err
	}

	stats := &CourseStats{DifficultyDistribution: map[string]int{}}
	stats.TotalQuizzes = len(quizzes)

	var lastGenerated time.Time
	modules := map[string]bool{}
	for i := range quizzes {
		q := &quizzes[i]
		stats.TotalQuestions += q.TotalQuestions
		difficulty := q.Difficulty
		if difficulty == "" {
			difficulty = "medium"
		}
		stats.DifficultyDistribution[difficulty]++
		if q.ModuleCode != "" {
			modules[q.ModuleCode] = true
		}
		if q.CreatedAt.After(lastGenerated) {
			lastGenerated = q.CreatedAt
		}
	}
	stats.ModulesWithQuizzes = len(modules)
	if len(quizzes) > 0 {
		stats.AverageQuestionsPerQuiz = float64(stats.TotalQuestions) / float64(len(quizzes))
		stats.LastGenerated = lastGenerated.Format(time.RFC3339)
	}
	return stats, nil
}
