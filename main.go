package main

import (
	"log"
	"time"

	"quizgen-service/internal/auth"
	"quizgen-service/internal/config"
	"quizgen-service/internal/db"
	"quizgen-service/internal/event"
	"quizgen-service/internal/generator"
	"quizgen-service/internal/handlers"
	"quizgen-service/internal/llm"
	"quizgen-service/internal/repository"
	"quizgen-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := db.Disconnect(client); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	database := client.Database(cfg.MongoDatabase)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExch != "" {
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExch)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, lifecycle events will not be published")
	}

	// Repositories
	quizRepo := repository.NewQuizRepository(database)
	courseRepo := repository.NewCourseRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)

	// Generation capability
	llmClient := llm.NewClient(llm.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})
	quizGenerator := generator.NewWithTimeout(llmClient, cfg.LLMTimeout)

	// Services
	resolver := service.NewCourseResolver(courseRepo)
	quizService := service.NewQuizService(quizRepo)
	generationService := service.NewGenerationService(resolver, quizGenerator, quizRepo)
	attemptScorer := service.NewAttemptScorer(attemptRepo, quizRepo)

	// Handlers
	quizHandler := handlers.NewQuizHandler(quizService, generationService)
	attemptHandler := handlers.NewAttemptHandler(attemptScorer)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", quizHandler.Health)

	quizzes := r.Group("/api/v1/quizzes")
	quizzes.Use(auth.RequireUser(cfg.JWTSecret))
	{
		quizzes.POST("/generate", func(c *gin.Context) {
			quizHandler.GenerateQuizzes(c)
			if publisher != nil {
				publisher.Publish(event.QuizGenerated, gin.H{
					"user_id":   c.GetString(auth.UserIDKey),
					"timestamp": time.Now(),
				})
			}
		})
		quizzes.GET("/generation-status/:courseId", quizHandler.GenerationStatus)

		quizzes.POST("/", func(c *gin.Context) {
			quizHandler.CreateQuiz(c)
			if publisher != nil {
				publisher.Publish(event.QuizCreated, gin.H{
					"user_id":   c.GetString(auth.UserIDKey),
					"timestamp": time.Now(),
				})
			}
		})
		quizzes.GET("/:id", quizHandler.GetQuiz)
		quizzes.PUT("/:id", func(c *gin.Context) {
			quizHandler.UpdateQuiz(c)
			if publisher != nil {
				publisher.Publish(event.QuizUpdated, gin.H{
					"quiz_id":   c.Param("id"),
					"timestamp": time.Now(),
				})
			}
		})
		quizzes.DELETE("/:id", func(c *gin.Context) {
			quizHandler.DeleteQuiz(c)
			if publisher != nil {
				publisher.Publish(event.QuizDeleted, gin.H{
					"quiz_id":   c.Param("id"),
					"timestamp": time.Now(),
				})
			}
		})

		quizzes.GET("/course/:courseId", quizHandler.ListByCourse)
		quizzes.GET("/stats/course/:courseId", quizHandler.CourseStats)

		quizzes.POST("/attempt", func(c *gin.Context) {
			attemptHandler.CreateAttempt(c)
			if publisher != nil {
				publisher.Publish(event.AttemptSubmitted, gin.H{
					"user_id":   c.GetString(auth.UserIDKey),
					"timestamp": time.Now(),
				})
			}
		})
		quizzes.GET("/attempts/my", attemptHandler.MyAttempts)
	}

	log.Printf("%s %s listening on :%s", cfg.ServiceName, cfg.ServiceVersion, cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
