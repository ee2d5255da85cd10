package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brutus/config"
	"brutus/utils"
)

const thumbnailSize = 512

// UploadImage accepts a JPEG upload and stores it as the default analysis
// input, plus a uniquely named archive copy and a thumbnail.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/jpg" {
		fail(c, http.StatusBadRequest, "Only JPG/JPEG files are allowed")
		return
	}

	if err := os.MkdirAll(filepath.Dir(config.INPUT_PATH), 0755); err != nil {
		fail(c, http.StatusInternalServerError, "Error saving uploaded image: "+err.Error())
		return
	}
	if err := c.SaveUploadedFile(file, config.INPUT_PATH); err != nil {
		fail(c, http.StatusInternalServerError, "Error saving uploaded image: "+err.Error())
		return
	}

	// Archive copy, so the next upload doesn't destroy this one
	archivePath := filepath.Join(filepath.Dir(config.INPUT_PATH), uuid.NewString()+".jpg")
	if err := c.SaveUploadedFile(file, archivePath); err != nil {
		log.Printf("Error archiving uploaded image: %v", err)
		archivePath = ""
	}

	thumbPath := makeThumbnail(config.INPUT_PATH)

	success(c, http.StatusCreated, gin.H{
		"filename":    config.INPUT_PATH,
		"archived_as": archivePath,
		"thumbnail":   thumbPath,
	})
}

func makeThumbnail(imagePath string) string {
	thumbPath := strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + "_thumb.jpg"
	in, err := os.Open(imagePath)
	if err != nil {
		log.Printf("Error opening %s for thumbnailing: %v", imagePath, err)
		return ""
	}
	defer in.Close()
	out, err := os.Create(thumbPath)
	if err != nil {
		log.Printf("Error creating thumbnail %s: %v", thumbPath, err)
		return ""
	}
	defer out.Close()
	if _, err := utils.Thumbnail(thumbnailSize, in, out); err != nil {
		log.Printf("Error creating thumbnail for %s: %v", imagePath, err)
		return ""
	}
	return thumbPath
}
