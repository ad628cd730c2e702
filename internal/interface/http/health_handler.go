package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness only; it touches no dependencies.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "App is running!"})
}
