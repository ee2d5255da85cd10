package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Info describes the service and its endpoints.
func (a *API) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Brutus backend API",
		"version":     "1.0.0",
		"status":      "online",
		"description": "Endpoints for image analysis and speech synthesis.",
		"endpoints": gin.H{
			"health":              "/health",
			"upload_image":        "/upload/image",
			"analyze_image":       "/analyze/image",
			"analyze_faces":       "/analyze/faces",
			"facial_recognition":  "/analyze/facial-recognition",
			"analyze_all":         "/analyze/all",
			"save_analyzed_image": "/analyze/save-image",
			"analyzed_image":      "/images/analyzed",
			"synthesize_speech":   "/speech/synthesize",
		},
	})
}

// Health is the liveness endpoint.
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Healthy"})
}
