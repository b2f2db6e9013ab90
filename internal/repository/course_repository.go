package repository

import (
	"context"
	"errors"
	"log"

	"quizgen-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CourseRepository reads the course/asset collections owned by the course
// CRUD store. This service never writes to them.
type CourseRepository struct {
	Courses *mongo.Collection
	Assets  *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{
		Courses: db.Collection("courses"),
		Assets:  db.Collection("assets"),
	}
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var course models.Course
	err = r.Courses.FindOne(ctx, bson.M{"_id": objID}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindAssetsByIDs fetches assets by hex id, skipping ids that are malformed
// or unresolvable, and returns them in the requested order.
func (r *CourseRepository) FindAssetsByIDs(ctx context.Context, ids []string) ([]models.Asset, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			log.Printf("invalid asset id %q, skipping", id)
			continue
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return nil, nil
	}

	cur, err := r.Assets.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]models.Asset, len(objIDs))
	for cur.Next(ctx) {
		var a models.Asset
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		byID[a.ID] = a
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	// $in gives no ordering guarantee; restore the module's asset order.
	assets := make([]models.Asset, 0, len(byID))
	for _, objID := range objIDs {
		if a, ok := byID[objID]; ok {
			assets = append(assets, a)
		}
	}
	return assets, nil
}
