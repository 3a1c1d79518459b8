package main

import (
	"flag"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sgatu/chezz3d/config"
	"github.com/sgatu/chezz3d/handlers"
	"github.com/sgatu/chezz3d/infrastructure/repositories"
	"github.com/sgatu/chezz3d/logging"
	"github.com/sgatu/chezz3d/models"
	"github.com/sgatu/chezz3d/services"
)

func main() {
	configFile := flag.String("config", "chezz.toml", "path to the TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logging.Errorf("%s", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logging.SetLevel(logging.DEBUG)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	node, err := snowflake.NewNode(cfg.NodeId)
	if err != nil {
		logging.Errorf("snowflake node %d: %s", cfg.NodeId, err)
		os.Exit(1)
	}

	var gameRepository models.GameRepository
	var sessionRepository models.SessionRepository
	switch cfg.Storage {
	case config.STORAGE_BADGER:
		db, err := repositories.OpenBadger(cfg.BadgerDir)
		if err != nil {
			logging.Errorf("opening badger store: %s", err)
			os.Exit(1)
		}
		defer db.Close()
		gameRepository = repositories.NewBadgerGameRepository(db)
		sessionRepository = repositories.NewBadgerSessionRepository(db)
	default:
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
		defer redisClient.Close()
		gameRepository = repositories.NewRedisGameRepository(redisClient)
		sessionRepository = repositories.NewRedisSessionRepository(redisClient)
	}
	logging.Infof("using %s storage, saves in %s", cfg.Storage, cfg.SavesDir)

	router := gin.Default()
	handlers.SetupRoutes(router, &handlers.Dependencies{
		GameRepository:    gameRepository,
		SessionRepository: sessionRepository,
		BoardSource:       repositories.NewSaveFileRepository(cfg.SavesDir),
		GameManager:       services.NewGameManagerService(gameRepository),
		Node:              node,
		AllowedOrigins:    cfg.AllowedOrigins,
	})
	logging.Infof("listening on %s", cfg.HttpAddr)
	if err := router.Run(cfg.HttpAddr); err != nil {
		logging.Errorf("server stopped: %s", err)
	}
}
