package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizgen-service/internal/models"
	"quizgen-service/internal/repository"
)

type fakeCourseStore struct {
	courses   map[string]*models.Course
	assets    map[string]models.Asset
	assetsErr error
}

func (f *fakeCourseStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return course, nil
}

func (f *fakeCourseStore) FindAssetsByIDs(ctx context.Context, ids []string) ([]models.Asset, error) {
	if f.assetsErr != nil {
		return nil, f.assetsErr
	}
	var result []models.Asset
	for _, id := range ids {
		if a, ok := f.assets[id]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

func testCourseStore() (*fakeCourseStore, string) {
	assetID := primitive.NewObjectID().Hex()
	courseID := primitive.NewObjectID().Hex()
	store := &fakeCourseStore{
		courses: map[string]*models.Course{
			courseID: {
				Title: "Intro to Networking",
				Modules: []models.Module{
					{ID: primitive.NewObjectID(), Code: "MOD-1", Title: "Basics", Assets: []string{assetID}},
					{Code: "MOD-2", Title: "Routing"},
				},
			},
		},
		assets: map[string]models.Asset{
			assetID: {Type: "text", Title: "Reading", Content: "OSI layers overview"},
		},
	}
	return store, courseID
}

func TestResolveAllModules(t *testing.T) {
	store, courseID := testCourseStore()
	resolver := NewCourseResolver(store)

	modules, err := resolver.Resolve(context.Background(), courseID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(modules))
	}
	if modules[0].CourseTitle != "Intro to Networking" {
		t.Errorf("unexpected course title %q", modules[0].CourseTitle)
	}
	if modules[0].ModuleCode != "MOD-1" || modules[1].ModuleCode != "MOD-2" {
		t.Errorf("modules out of course order: %v", modules)
	}
	if !strings.Contains(modules[0].AssetsContent, "OSI layers overview") {
		t.Errorf("expected extracted asset content, got %q", modules[0].AssetsContent)
	}
	if modules[0].ModuleID == "" {
		t.Error("expected module id for module with object id")
	}
	if modules[1].ModuleID != "" {
		t.Error("expected empty module id for zero object id")
	}
	if modules[1].AssetsContent != "" {
		t.Errorf("module without assets should have no content, got %q", modules[1].AssetsContent)
	}
}

func TestResolveSingleModule(t *testing.T) {
	store, courseID := testCourseStore()
	resolver := NewCourseResolver(store)

	modules, err := resolver.Resolve(context.Background(), courseID, "MOD-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(modules) != 1 || modules[0].ModuleCode != "MOD-2" {
		t.Errorf("expected only MOD-2, got %v", modules)
	}
}

func TestResolveUnknownModuleCode(t *testing.T) {
	store, courseID := testCourseStore()
	resolver := NewCourseResolver(store)

	modules, err := resolver.Resolve(context.Background(), courseID, "MOD-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(modules) != 0 {
		t.Errorf("expected no modules for unknown code, got %v", modules)
	}
}

func TestResolveMissingCourse(t *testing.T) {
	store, _ := testCourseStore()
	resolver := NewCourseResolver(store)

	_, err := resolver.Resolve(context.Background(), primitive.NewObjectID().Hex(), "")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveAssetFailureYieldsEmptyContent(t *testing.T) {
	store, courseID := testCourseStore()
	store.assetsErr = errors.New("connection reset")
	resolver := NewCourseResolver(store)

	modules, err := resolver.Resolve(context.Background(), courseID, "MOD-1")
	if err != nil {
		t.Fatalf("asset failure must not fail resolution: %v", err)
	}
	if len(modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(modules))
	}
	if modules[0].AssetsContent != "" {
		t.Errorf("expected empty content on asset failure, got %q", modules[0].AssetsContent)
	}
}
