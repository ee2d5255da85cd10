package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"brutus/config"
)

type synthesizeRequest struct {
	Text       string `json:"text" binding:"required"`
	OutputFile string `json:"output_file"`
	SpeechRate int    `json:"speech_rate"`
}

// Synthesize converts text to an MP3 file.
func (a *API) Synthesize(c *gin.Context) {
	r := synthesizeRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if r.OutputFile == "" {
		r.OutputFile = filepath.Join(config.SPEECH_OUTPUT_DIR, "speech.mp3")
	}
	if r.SpeechRate == 0 {
		r.SpeechRate = config.SPEECH_RATE
	}

	path, err := a.Speech.TextToSpeech(r.Text, r.OutputFile, r.SpeechRate)
	if err != nil {
		log.Printf("Error synthesizing speech: %v", err)
		fail(c, http.StatusInternalServerError, "Error synthesizing speech: "+err.Error())
		return
	}
	success(c, http.StatusCreated, gin.H{"output_file": path})
}
