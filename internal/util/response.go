package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes the unified success envelope.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// SuccessList writes a list envelope with a result count.
func SuccessList(c *gin.Context, results int, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
		"data":    data,
	})
}

// Error writes the unified error envelope.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"message": msg,
	})
}
