package handlers

import (
	"net/http"

	"quizgen-service/internal/auth"
	"quizgen-service/internal/models"
	"quizgen-service/internal/service"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	Scorer *service.AttemptScorer
}

func NewAttemptHandler(scorer *service.AttemptScorer) *AttemptHandler {
	return &AttemptHandler{Scorer: scorer}
}

type CreateAttemptRequest struct {
	QuizID        string                 `json:"quiz_id" binding:"required"`
	UserProgramID string                 `json:"user_program_id" binding:"required"`
	Answers       []models.AttemptAnswer `json:"answers" binding:"required,min=1"`
}

func (h *AttemptHandler) CreateAttempt(c *gin.Context) {
	var req CreateAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := c.GetString(auth.UserIDKey)

	attempt, err := h.Scorer.CreateAttempt(c.Request.Context(), userID, req.QuizID, req.UserProgramID, req.Answers)
	if err != nil {
		respondError(c, err, "Quiz not found")
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

func (h *AttemptHandler) MyAttempts(c *gin.Context) {
	userID := c.GetString(auth.UserIDKey)
	attempts, err := h.Scorer.GetUserAttempts(c.Request.Context(), userID, c.Query("quiz_id"), c.Query("user_program_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if attempts == nil {
		attempts = []models.QuizAttempt{}
	}
	c.JSON(http.StatusOK, attempts)
}
