package repository

import (
	"context"
	"fmt"

	"quizgen-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("quiz_attempts")}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) (*models.QuizAttempt, error) {
	attempt.ID = primitive.NewObjectID()
	if _, err := r.Col.InsertOne(ctx, attempt); err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}
	return attempt, nil
}

// FindByUser lists a user's attempts newest first. quizID and userProgramID
// narrow the result when non-empty.
func (r *AttemptRepository) FindByUser(ctx context.Context, userID, quizID, userProgramID string) ([]models.QuizAttempt, error) {
	query := bson.M{"user_id": userID}
	if quizID != "" {
		query["quiz_id"] = quizID
	}
	if userProgramID != "" {
		query["user_program_id"] = userProgramID
	}
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	cur, err := r.Col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.QuizAttempt
	for cur.Next(ctx) {
		var a models.QuizAttempt
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, cur.Err()
}
