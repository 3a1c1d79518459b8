package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sgatu/chezz3d/services"
)

type HealthHandler struct {
	gameManager *services.GameManagerService
}

func (hh *HealthHandler) healthHandler(c *gin.Context) {
	c.String(200, "ok")
}

func (hh *HealthHandler) statsHandler(c *gin.Context) {
	c.JSON(200, struct {
		LiveGames int `json:"liveGames"`
	}{LiveGames: hh.gameManager.LiveGames()})
}
