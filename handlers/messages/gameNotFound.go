package handlers_messages

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type NotFoundMessage struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func PushNotFoundMessage(c *gin.Context, what string, id string) {
	c.JSON(
		404,
		&NotFoundMessage{
			Message: fmt.Sprintf("%s '%s' was not found or could not be recovered.", what, id),
			Code:    404,
		},
	)
}

func PushGameNotFoundMessage(c *gin.Context, id string) {
	PushNotFoundMessage(c, "Game with id", id)
}

func PushSaveNotFoundMessage(c *gin.Context, name string) {
	PushNotFoundMessage(c, "Save", name)
}
