package service

import (
	"context"
	"log"

	"quizgen-service/internal/content"
	"quizgen-service/internal/models"
)

// CourseStore is the read-only slice of the course CRUD store this service
// depends on.
type CourseStore interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindAssetsByIDs(ctx context.Context, ids []string) ([]models.Asset, error)
}

// ModuleInfo is one generation target: a module plus its extracted content.
type ModuleInfo struct {
	CourseID      string `json:"course_id"`
	CourseTitle   string `json:"course_title"`
	ModuleID      string `json:"module_id,omitempty"`
	ModuleTitle   string `json:"module_title,omitempty"`
	ModuleCode    string `json:"module_code,omitempty"`
	AssetsContent string `json:"assets_content,omitempty"`
}

// CourseResolver loads course structure and materializes each requested
// module's learning content through the asset extractor.
type CourseResolver struct {
	store CourseStore
}

func NewCourseResolver(store CourseStore) *CourseResolver {
	return &CourseResolver{store: store}
}

// Resolve returns one ModuleInfo per target module in course order. A
// missing course surfaces as ErrNotFound from the store; a module code not
// present in the course yields an empty list.
func (s *CourseResolver) Resolve(ctx context.Context, courseID, moduleCode string) ([]ModuleInfo, error) {
	course, err := s.store.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var result []ModuleInfo
	for i := range course.Modules {
		m := &course.Modules[i]
		if moduleCode != "" && m.Code != moduleCode {
			continue
		}
		result = append(result, ModuleInfo{
			CourseID:      courseID,
			CourseTitle:   course.Title,
			ModuleID:      moduleID(m),
			ModuleTitle:   m.Title,
			ModuleCode:    m.Code,
			AssetsContent: s.assetsContent(ctx, m),
		})
	}
	return result, nil
}

func (s *CourseResolver) assetsContent(ctx context.Context, m *models.Module) string {
	if len(m.Assets) == 0 {
		return ""
	}
	assets, err := s.store.FindAssetsByIDs(ctx, m.Assets)
	if err != nil {
		// Extraction failure for one module is reported downstream as
		// absence of content, not as a resolver failure.
		log.Printf("failed to load assets for module %s: %v", m.Code, err)
		return ""
	}
	return content.Extract(assets)
}

func moduleID(m *models.Module) string {
	if m.ID.IsZero() {
		return ""
	}
	return m.ID.Hex()
}
