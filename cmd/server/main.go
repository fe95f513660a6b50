package main

import (
	"context"
	"log"
	"os/signal"
	"strconv"
	"syscall"

	"quiz-arena-backend/internal/cache"
	"quiz-arena-backend/internal/config"
	"quiz-arena-backend/internal/database"
	"quiz-arena-backend/internal/handlers"
	"quiz-arena-backend/internal/middleware"
	"quiz-arena-backend/internal/services"
	"quiz-arena-backend/internal/ws"

	_ "quiz-arena-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Quiz Arena API
// @version         1.0
// @description     API for quiz games: game masters author games, players submit plays
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	listCache := cache.New()
	hub := ws.NewHub()

	queueSize, _ := strconv.Atoi(cfg.AvatarQueueSize)
	avatarService := services.NewAvatarService(db, cfg.UploadDir, queueSize)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	playerService := services.NewPlayerService(db, avatarService, listCache)
	gameService := services.NewGameService(db, listCache)
	genreService := services.NewGenreService(db)
	scoringService := services.NewScoringService()
	playService := services.NewPlayService(db, scoringService)
	transferService := services.NewTransferService(db, genreService, cfg.ExportDir)

	authHandler := handlers.NewAuthHandler(authService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	gameHandler := handlers.NewGameHandler(gameService, playerService)
	questionHandler := handlers.NewQuestionHandler(gameService, playerService)
	genreHandler := handlers.NewGenreHandler(genreService)
	playHandler := handlers.NewPlayHandler(playService, playerService, hub)
	transferHandler := handlers.NewTransferHandler(gameService, transferService, playerService)
	wsHandler := handlers.NewWSHandler(hub)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go avatarService.Start(ctx)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/games/:id", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		api.GET("/games", gameHandler.ListGames)
		api.GET("/games/:id", gameHandler.GetGame)
		api.GET("/genres", genreHandler.ListGenres)

		games := api.Group("/games")
		games.Use(middleware.JWTAuth(authService))
		{
			games.POST("", gameHandler.CreateGame)
			games.PUT("/:id", gameHandler.UpdateGame)
			games.DELETE("/:id", gameHandler.DeleteGame)
			games.POST("/:id/questions", questionHandler.CreateQuestion)
			games.GET("/:id/export", transferHandler.ExportGame)
			games.POST("/import", transferHandler.ImportGames)
		}

		questions := api.Group("/questions")
		questions.Use(middleware.JWTAuth(authService))
		{
			questions.PUT("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
			questions.POST("/:id/answers", questionHandler.CreateAnswer)
		}

		answers := api.Group("/answers")
		answers.Use(middleware.JWTAuth(authService))
		{
			answers.PUT("/:id", questionHandler.UpdateAnswer)
			answers.DELETE("/:id", questionHandler.DeleteAnswer)
		}

		genres := api.Group("/genres")
		genres.Use(middleware.JWTAuth(authService))
		{
			genres.POST("", genreHandler.CreateGenre)
		}

		players := api.Group("/players")
		players.Use(middleware.JWTAuth(authService))
		{
			players.GET("", playerHandler.ListPlayers)
			players.POST("", playerHandler.CreatePlayer)
			players.GET("/:id", playerHandler.GetPlayer)
			players.PUT("/:id", playerHandler.UpdatePlayer)
		}

		plays := api.Group("/plays")
		plays.Use(middleware.JWTAuth(authService))
		{
			plays.GET("", playHandler.ListPlays)
			plays.POST("", playHandler.CreatePlay)
			plays.GET("/:id", playHandler.GetPlay)
			plays.PUT("/:id/entries/:question_id", playHandler.SubmitEntry)
			plays.GET("/:id/score", playHandler.GetPlayScore)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
