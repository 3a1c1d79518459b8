package handlers

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sgatu/chezz3d/middleware"
	"github.com/sgatu/chezz3d/models"
	"github.com/sgatu/chezz3d/services"
)

type Dependencies struct {
	GameRepository    models.GameRepository
	SessionRepository models.SessionRepository
	BoardSource       models.BoardSource
	GameManager       *services.GameManagerService
	Node              *snowflake.Node
	AllowedOrigins    []string
}

func corsConfig(allowedOrigins []string) cors.Config {
	config := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
	}
	return config
}

func SetupRoutes(engine *gin.Engine, deps *Dependencies) {
	engine.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	healthHandler := &HealthHandler{gameManager: deps.GameManager}
	engine.GET("/health", healthHandler.healthHandler)
	engine.GET("/stats", healthHandler.statsHandler)

	gameHandler := &GameHandler{
		gameRepository: deps.GameRepository,
		boardSource:    deps.BoardSource,
		node:           deps.Node,
	}
	playHandler := &PlayHandler{gameManager: deps.GameManager}

	sessionManager := middleware.NewSessionManager(deps.SessionRepository, deps.Node)
	withSession := engine.Group("/", sessionManager.ManageSession())
	withSession.POST("/game", gameHandler.createNewGame)
	withSession.GET("/play/:id", playHandler.Play)

	engine.GET("/game/:id", gameHandler.getGame)
	engine.GET("/game/:id/board", gameHandler.getBoard)
	engine.GET("/game/:id/moves/:index", gameHandler.getMoves)
	engine.POST("/game/:id/save", gameHandler.saveBoard)
}
