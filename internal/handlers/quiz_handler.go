package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quizgen-service/internal/models"
	"quizgen-service/internal/repository"
	"quizgen-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service    *service.QuizService
	Generation *service.GenerationService
}

func NewQuizHandler(s *service.QuizService, g *service.GenerationService) *QuizHandler {
	return &QuizHandler{Service: s, Generation: g}
}

// CreateQuizRequest is the wire shape for manual quiz creation.
type CreateQuizRequest struct {
	CourseID             string            `json:"course_id" binding:"required"`
	ModuleCode           string            `json:"module_code"`
	Title                string            `json:"title" binding:"required"`
	Description          string            `json:"description"`
	Difficulty           string            `json:"difficulty"`
	Questions            []models.Question `json:"questions" binding:"required"`
	EstimatedTimeMinutes int               `json:"estimated_time_minutes"`
}

func (h *QuizHandler) GenerateQuizzes(c *gin.Context) {
	var req service.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result := h.Generation.GenerateForCourse(c.Request.Context(), req)
	c.JSON(http.StatusOK, result)
}

func (h *QuizHandler) GenerationStatus(c *gin.Context) {
	courseID := c.Param("courseId")
	status, err := h.Generation.Status(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err, "Course not found")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quiz := &models.Quiz{
		CourseID:             req.CourseID,
		ModuleCode:           req.ModuleCode,
		Title:                req.Title,
		Description:          req.Description,
		Difficulty:           req.Difficulty,
		Questions:            req.Questions,
		EstimatedTimeMinutes: req.EstimatedTimeMinutes,
	}
	created, err := h.Service.CreateQuiz(c.Request.Context(), quiz)
	if err != nil {
		respondError(c, err, "Quiz not found")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.Service.GetQuiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Quiz not found")
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	var update models.QuizUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quiz, err := h.Service.UpdateQuiz(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err, "Quiz not found")
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	deleted, err := h.Service.DeleteQuiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

func (h *QuizHandler) ListByCourse(c *gin.Context) {
	courseID := c.Param("courseId")
	moduleCode := c.Query("module_code")
	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", 10)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	quizzes, err := h.Service.ListByCourse(c.Request.Context(), courseID, moduleCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total := len(quizzes)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	pageQuizzes := make([]models.Quiz, 0, end-start)
	pageQuizzes = append(pageQuizzes, quizzes[start:end]...)

	c.JSON(http.StatusOK, gin.H{
		"quizzes": pageQuizzes,
		"total":   total,
		"page":    page,
		"size":    size,
		"pages":   (total + size - 1) / size,
	})
}

func (h *QuizHandler) CourseStats(c *gin.Context) {
	stats, err := h.Service.CourseStats(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *QuizHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quizgen-service",
	})
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
