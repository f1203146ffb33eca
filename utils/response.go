package utils

import "github.com/gin-gonic/gin"

func ErrorResponse(message string) gin.H {
	return gin.H{
		"success": false,
		"message": message,
	}
}

func SuccessResponse(message string, data any) gin.H {
	return gin.H{
		"success": true,
		"message": message,
		"data":    data,
	}
}
