// Package handlers exposes the analysis facade over HTTP.
package handlers

import (
	"github.com/gin-gonic/gin"

	"brutus/recognition"
	"brutus/speech"
)

// API bundles the outbound service clients the handlers depend on. Handlers
// are methods so the clients are injected once at wiring time instead of
// living in package globals.
type API struct {
	Eyes   *recognition.Client
	Speech *speech.Generator
}

func success(c *gin.Context, status int, data gin.H) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
