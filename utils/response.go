package utils

import "github.com/gin-gonic/gin"

// JSONError writes the structured error body used across the API:
// a stable machine-readable code plus a human-readable message.
func JSONError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}
