package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"quizgen-service/internal/generator"
	"quizgen-service/internal/models"
	"quizgen-service/internal/repository"
)

const (
	defaultNumQuestions = 5
	maxNumQuestions     = 20

	// Rough completion estimate used for estimated_time_minutes.
	minutesPerQuestion = 2
)

// QuestionSetGenerator is the generation capability as the orchestrator
// sees it: one validated question set per module, or a typed failure.
type QuestionSetGenerator interface {
	Generate(ctx context.Context, moduleCode, moduleTitle, moduleContent string, numQuestions int, difficulty string) (*generator.QuestionSet, error)
}

// ModuleResolver yields the generation targets for a course.
type ModuleResolver interface {
	Resolve(ctx context.Context, courseID, moduleCode string) ([]ModuleInfo, error)
}

// GenerationRequest is the wire shape of a batch generation request.
type GenerationRequest struct {
	CourseID     string `json:"course_id" binding:"required"`
	ModuleCode   string `json:"module_code"`
	Overwrite    bool   `json:"overwrite"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

// BatchResult aggregates per-module outcomes of one generation request.
// Outcomes are attributed by module code, never by processing order.
type BatchResult struct {
	Success          bool          `json:"success"`
	Message          string        `json:"message"`
	GeneratedQuizzes []models.Quiz `json:"generated_quizzes"`
	SkippedModules   []string      `json:"skipped_modules"`
	Errors           []string      `json:"errors"`
}

// GenerationStatus reports quiz coverage across a course's modules.
type GenerationStatus struct {
	CourseID              string     `json:"course_id"`
	TotalModules          int        `json:"total_modules"`
	ModulesWithQuizzes    int        `json:"modules_with_quizzes"`
	ModulesWithoutQuizzes int        `json:"modules_without_quizzes"`
	LastGenerated         *time.Time `json:"last_generated,omitempty"`
}

// GenerationService implements the per-module skip/overwrite policy on top
// of the resolver, the generator and the quiz store.
type GenerationService struct {
	resolver  ModuleResolver
	generator QuestionSetGenerator
	store     QuizStore
}

func NewGenerationService(resolver ModuleResolver, gen QuestionSetGenerator, store QuizStore) *GenerationService {
	return &GenerationService{resolver: resolver, generator: gen, store: store}
}

// GenerateForCourse processes each target module independently; one
// module's failure never aborts the batch. Policy per module:
//
//	current batch exists, overwrite=false  -> skipped
//	current batch exists, overwrite=true   -> regenerate, retire prior batch
//	no current batch                       -> generate
//
// A replacement question set is generated and validated BEFORE the prior
// batch is retired, so a provider failure cannot leave a module with no
// active quiz.
func (s *GenerationService) GenerateForCourse(ctx context.Context, req GenerationRequest) *BatchResult {
	result := &BatchResult{
		GeneratedQuizzes: []models.Quiz{},
		SkippedModules:   []string{},
		Errors:           []string{},
	}

	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = defaultNumQuestions
	}
	if numQuestions > maxNumQuestions {
		numQuestions = maxNumQuestions
	}
	difficulty := req.Difficulty
	if !models.Difficulties[difficulty] {
		difficulty = "medium"
	}

	modules, err := s.resolver.Resolve(ctx, req.CourseID, req.ModuleCode)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		result.Message = fmt.Sprintf("Error generating quizzes: %v", err)
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if len(modules) == 0 {
		result.Message = "Course or module not found"
		return result
	}

	for _, mod := range modules {
		if mod.ModuleCode == "" {
			continue
		}
		s.generateForModule(ctx, mod, numQuestions, difficulty, req.Overwrite, result)
	}

	result.Success = len(result.GeneratedQuizzes) > 0 ||
		(len(result.SkippedModules) > 0 && len(result.Errors) == 0)
	result.Message = composeMessage(result)
	return result
}

func (s *GenerationService) generateForModule(ctx context.Context, mod ModuleInfo, numQuestions int, difficulty string, overwrite bool, result *BatchResult) {
	existing, err := s.store.FindByCourse(ctx, mod.CourseID, mod.ModuleCode)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("module %s: %v", mod.ModuleCode, err))
		return
	}
	if len(existing) > 0 && !overwrite {
		result.SkippedModules = append(result.SkippedModules, mod.ModuleCode)
		return
	}

	moduleTitle := mod.ModuleTitle
	if moduleTitle == "" {
		moduleTitle = "Module " + mod.ModuleCode
	}

	set, err := s.generator.Generate(ctx, mod.ModuleCode, moduleTitle, mod.AssetsContent, numQuestions, difficulty)
	if err != nil {
		log.Printf("generation failed for module %s: %v", mod.ModuleCode, err)
		result.Errors = append(result.Errors, err.Error())
		return
	}

	// The replacement is in hand; only now retire the prior batch.
	if len(existing) > 0 {
		deleted, err := s.store.SoftDeleteBatch(ctx, mod.CourseID, mod.ModuleCode)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("module %s: %v", mod.ModuleCode, err))
			return
		}
		log.Printf("marked %d existing quizzes as deleted for module %s", deleted, mod.ModuleCode)
	}

	quiz := buildQuiz(mod, moduleTitle, set, difficulty)
	created, err := s.store.Create(ctx, quiz)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("module %s: %v", mod.ModuleCode, err))
		return
	}
	result.GeneratedQuizzes = append(result.GeneratedQuizzes, *created)
}

func buildQuiz(mod ModuleInfo, moduleTitle string, set *generator.QuestionSet, difficulty string) *models.Quiz {
	title := set.Title
	if title == "" {
		title = "Quiz: " + moduleTitle
	}
	return &models.Quiz{
		CourseID:             mod.CourseID,
		ModuleCode:           mod.ModuleCode,
		Title:                title,
		Description:          "Auto-generated quiz for module: " + moduleTitle,
		Difficulty:           difficulty,
		Questions:            set.Questions,
		EstimatedTimeMinutes: len(set.Questions) * minutesPerQuestion,
		GeneratedByAI:        true,
	}
}

func composeMessage(result *BatchResult) string {
	generated := len(result.GeneratedQuizzes)
	skipped := len(result.SkippedModules)
	switch {
	case generated > 0 && skipped > 0:
		return fmt.Sprintf("Generated %d quizzes, skipped %d existing quizzes", generated, skipped)
	case generated > 0:
		return fmt.Sprintf("Generated %d quizzes", generated)
	case skipped > 0:
		return fmt.Sprintf("Skipped %d existing quizzes. Use overwrite=true to regenerate.", skipped)
	default:
		return "No quizzes were generated"
	}
}

// Status reports how many of a course's modules currently have an active
// quiz. The course must exist.
func (s *GenerationService) Status(ctx context.Context, courseID string) (*GenerationStatus, error) {
	modules, err := s.resolver.Resolve(ctx, courseID, "")
	if err != nil {
		return nil, err
	}
	quizzes, err := s.store.FindByCourse(ctx, courseID, "")
	if err != nil {
		return nil, err
	}

	covered := map[string]bool{}
	var lastGenerated time.Time
	for i := range quizzes {
		if quizzes[i].ModuleCode != "" {
			covered[quizzes[i].ModuleCode] = true
		}
		if quizzes[i].CreatedAt.After(lastGenerated) {
			lastGenerated = quizzes[i].CreatedAt
		}
	}

	status := &GenerationStatus{
		CourseID:              courseID,
		TotalModules:          len(modules),
		ModulesWithQuizzes:    len(covered),
		ModulesWithoutQuizzes: len(modules) - len(covered),
	}
	if len(quizzes) > 0 {
		status.LastGenerated = &lastGenerated
	}
	return status, nil
}
