package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sgatu/chezz3d/middleware"
	"github.com/sgatu/chezz3d/models"
)

// GetCurrentSession returns the session attached by the session middleware.
func GetCurrentSession(c *gin.Context) (*models.SessionStore, error) {
	value, ok := c.Get(middleware.SESSION_KEY)
	if !ok {
		return nil, fmt.Errorf("no session in context")
	}
	session, ok := value.(*models.SessionStore)
	if !ok || session == nil {
		return nil, fmt.Errorf("unexpected session type %T", value)
	}
	return session, nil
}
