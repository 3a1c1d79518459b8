package handlers_messages

import "github.com/gin-gonic/gin"

type UnknownSessionError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func NewUnknownSessionError() UnknownSessionError {
	return UnknownSessionError{
		Message: "Unknown session",
		Code:    401,
	}
}

func PushUnknownSessionMessage(c *gin.Context) {
	c.JSON(401, NewUnknownSessionError())
}
