package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizgen-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a document (or its id) does not resolve.
var ErrNotFound = errors.New("not found")

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection("quizzes")}
}

// Create assigns identity and timestamps, computes total_questions and
// persists the quiz as the active, non-deleted batch member.
func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	now := time.Now().UTC()
	quiz.ID = primitive.NewObjectID()
	quiz.TotalQuestions = len(quiz.Questions)
	quiz.IsActive = true
	quiz.IsDeleted = false
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	if _, err := r.Col.InsertOne(ctx, quiz); err != nil {
		return nil, fmt.Errorf("insert quiz: %w", err)
	}
	return quiz, nil
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var quiz models.Quiz
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindByCourse lists the active, non-deleted quizzes of a course, newest
// first, optionally narrowed to one module.
func (r *QuizRepository) FindByCourse(ctx context.Context, courseID, moduleCode string) ([]models.Quiz, error) {
	query := bson.M{"course_id": courseID, "is_active": true, "is_deleted": false}
	if moduleCode != "" {
		query["module_code"] = moduleCode
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var quizzes []models.Quiz
	for cur.Next(ctx) {
		var q models.Quiz
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, cur.Err()
}

// Update applies a partial update, recomputing total_questions when the
// question list is replaced, and returns the updated quiz.
func (r *QuizRepository) Update(ctx context.Context, id string, update models.QuizUpdate) (*models.Quiz, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Difficulty != nil {
		set["difficulty"] = *update.Difficulty
	}
	if update.EstimatedTimeMinutes != nil {
		set["estimated_time_minutes"] = *update.EstimatedTimeMinutes
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}
	if update.Questions != nil {
		set["questions"] = update.Questions
		set["total_questions"] = len(update.Questions)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var quiz models.Quiz
	err = r.Col.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update quiz: %w", err)
	}
	return &quiz, nil
}

// SoftDelete retires one quiz. The document is kept for audit; retirement
// is terminal. Returns false when the quiz does not exist.
func (r *QuizRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"is_deleted": true, "is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("soft delete quiz: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// SoftDeleteBatch retires every non-deleted quiz of a (course, module) slot.
// Used by the overwrite path before a replacement quiz is inserted.
func (r *QuizRepository) SoftDeleteBatch(ctx context.Context, courseID, moduleCode string) (int64, error) {
	res, err := r.Col.UpdateMany(ctx,
		bson.M{"course_id": courseID, "module_code": moduleCode, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("soft delete quizzes for course %s module %s: %w", courseID, moduleCode, err)
	}
	return res.ModifiedCount, nil
}
