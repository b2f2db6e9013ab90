package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinOptions = 2
	MaxOptions = 6
)

// Difficulties accepted for quizzes and generation requests.
var Difficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

type Question struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer int      `bson:"correct_answer" json:"correct_answer"`
	Explanation   string   `bson:"explanation,omitempty" json:"explanation,omitempty"`
}

// Validate checks the structural invariants of a single question.
func (q *Question) Validate() error {
	if q.Question == "" {
		return &ValidationError{Msg: "question text is required"}
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return &ValidationError{Msg: fmt.Sprintf("question must have between %d and %d options, got %d", MinOptions, MaxOptions, len(q.Options))}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return &ValidationError{Msg: fmt.Sprintf("correct_answer index %d out of range for %d options", q.CorrectAnswer, len(q.Options))}
	}
	return nil
}

type Quiz struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID             string             `bson:"course_id" json:"course_id"`
	ModuleCode           string             `bson:"module_code,omitempty" json:"module_code,omitempty"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Difficulty           string             `bson:"difficulty" json:"difficulty"`
	Questions            []Question         `bson:"questions" json:"questions"`
	TotalQuestions       int                `bson:"total_questions" json:"total_questions"`
	EstimatedTimeMinutes int                `bson:"estimated_time_minutes" json:"estimated_time_minutes"`
	IsActive             bool               `bson:"is_active" json:"is_active"`
	IsDeleted            bool               `bson:"is_deleted" json:"is_deleted"`
	GeneratedByAI        bool               `bson:"generated_by_ai" json:"generated_by_ai"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}

// QuizUpdate carries the fields of a partial quiz update. Nil pointers and
// nil slices mean "leave unchanged".
type QuizUpdate struct {
	Title                *string    `json:"title,omitempty"`
	Description          *string    `json:"description,omitempty"`
	Difficulty           *string    `json:"difficulty,omitempty"`
	Questions            []Question `json:"questions,omitempty"`
	EstimatedTimeMinutes *int       `json:"estimated_time_minutes,omitempty"`
	IsActive             *bool      `json:"is_active,omitempty"`
}

// Validate rejects patches that would break quiz invariants.
func (u *QuizUpdate) Validate() error {
	if u.Title != nil && *u.Title == "" {
		return &ValidationError{Msg: "title cannot be empty"}
	}
	if u.Difficulty != nil && !Difficulties[*u.Difficulty] {
		return &ValidationError{Msg: fmt.Sprintf("invalid difficulty %q", *u.Difficulty)}
	}
	for i := range u.Questions {
		if err := u.Questions[i].Validate(); err != nil {
			return &ValidationError{Msg: fmt.Sprintf("question %d: %v", i, err)}
		}
	}
	return nil
}

// Validate checks the quiz invariants enforced at creation and update time.
func (q *Quiz) Validate() error {
	if q.Title == "" {
		return &ValidationError{Msg: "title is required"}
	}
	if q.Difficulty != "" && !Difficulties[q.Difficulty] {
		return &ValidationError{Msg: fmt.Sprintf("invalid difficulty %q", q.Difficulty)}
	}
	if len(q.Questions) == 0 {
		return &ValidationError{Msg: "quiz must have at least one question"}
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return &ValidationError{Msg: fmt.Sprintf("question %d: %v", i, err)}
		}
	}
	return nil
}
