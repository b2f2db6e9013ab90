package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttemptAnswer struct {
	QuestionIndex  int `bson:"question_index" json:"question_index"`
	SelectedAnswer int `bson:"selected_answer" json:"selected_answer"`
}

// QuizAttempt is one user's scored submission against a quiz. It is written
// fully scored with is_completed=true and never mutated afterward.
type QuizAttempt struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuizID        string             `bson:"quiz_id" json:"quiz_id"`
	UserID        string             `bson:"user_id" json:"user_id"`
	UserProgramID string             `bson:"user_program_id" json:"user_program_id"`
	Answers       []AttemptAnswer    `bson:"answers" json:"answers"`
	Score         int                `bson:"score" json:"score"`
	MaxScore      int                `bson:"max_score" json:"max_score"`
	Percentage    int                `bson:"percentage" json:"percentage"`
	StartedAt     time.Time          `bson:"started_at" json:"started_at"`
	CompletedAt   time.Time          `bson:"completed_at" json:"completed_at"`
	IsCompleted   bool               `bson:"is_completed" json:"is_completed"`
}
