package handlers_messages

import "github.com/gin-gonic/gin"

type BadRequestMessage struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func PushBadRequestMessage(c *gin.Context, message string) {
	c.JSON(400, &BadRequestMessage{Message: message, Code: 400})
}
