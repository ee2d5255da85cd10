package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"brutus/config"
	"brutus/recognition"
)

func inputExists(c *gin.Context, path, what string) bool {
	if _, err := os.Stat(path); err != nil {
		fail(c, http.StatusNotFound, what+" not found at "+path)
		return false
	}
	return true
}

// AnalyzeImage returns the consolidated labels detected in the image.
func (a *API) AnalyzeImage(c *gin.Context) {
	inputPath := c.DefaultQuery("input_path", config.INPUT_PATH)
	if !inputExists(c, inputPath, "Input image") {
		return
	}
	labels, err := a.Eyes.DetectLabels(inputPath, float64(config.MIN_LABEL_CONFIDENCE))
	if err != nil {
		log.Printf("Error detecting labels in %s: %v", inputPath, err)
		fail(c, http.StatusInternalServerError, "Error detecting labels: "+err.Error())
		return
	}
	success(c, http.StatusOK, gin.H{"input_image": inputPath, "labels": labels})
}

// AnalyzeFaces returns the detected faces and their attributes. A recognizer
// failure is reported inside the faces payload, not as an HTTP error.
func (a *API) AnalyzeFaces(c *gin.Context) {
	inputPath := c.DefaultQuery("input_path", config.INPUT_PATH)
	if !inputExists(c, inputPath, "Input image") {
		return
	}
	faces := a.Eyes.DetectFaceDetails(inputPath)
	success(c, http.StatusOK, gin.H{"input_image": inputPath, "faces": faces})
}

// FacialRecognition compares the faces in the input image against the
// reference library.
func (a *API) FacialRecognition(c *gin.Context) {
	inputPath := c.DefaultQuery("input_path", config.INPUT_PATH)
	referenceDir := c.DefaultQuery("reference_dir", config.REFERENCE_DIR)
	threshold := config.SIMILARITY_THRESHOLD
	if v := c.Query("similarity_threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid similarity_threshold: "+v)
			return
		}
		threshold = f
	}
	if !inputExists(c, inputPath, "Input image") {
		return
	}
	if !inputExists(c, referenceDir, "Reference library directory") {
		return
	}

	matches, err := a.Eyes.CompareWithLibrary(inputPath, referenceDir, threshold)
	if err != nil {
		if errors.Is(err, recognition.ErrInputNotFound) {
			fail(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error comparing faces in %s: %v", inputPath, err)
		fail(c, http.StatusInternalServerError, "Error comparing faces: "+err.Error())
		return
	}
	success(c, http.StatusOK, gin.H{
		"input_image":          inputPath,
		"reference_dir":        referenceDir,
		"similarity_threshold": threshold,
		"matches":              matches,
	})
}

// AnalyzeAll runs the three detections against the same image and reports
// them together. The detections are independent reads, so they run
// concurrently, and a failing one degrades to an error field in its own
// section instead of taking down the rest.
func (a *API) AnalyzeAll(c *gin.Context) {
	inputPath := c.DefaultQuery("input_path", config.INPUT_PATH)
	knownFacesDir := c.DefaultQuery("known_faces_dir", config.REFERENCE_DIR)
	if !inputExists(c, inputPath, "Input image") {
		return
	}
	if !inputExists(c, knownFacesDir, "Known faces directory") {
		return
	}

	var labelsData, facesData, matchesData interface{}
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		labels, err := a.Eyes.DetectLabels(inputPath, float64(config.MIN_LABEL_CONFIDENCE))
		if err != nil {
			log.Printf("Error detecting labels in %s: %v", inputPath, err)
			labelsData = gin.H{"error": err.Error()}
			return
		}
		labelsData = labels
	}()
	go func() {
		defer wg.Done()
		facesData = a.Eyes.DetectFaceDetails(inputPath)
	}()
	go func() {
		defer wg.Done()
		matches, err := a.Eyes.CompareWithLibrary(inputPath, knownFacesDir, config.SIMILARITY_THRESHOLD)
		if err != nil {
			log.Printf("Error comparing faces in %s: %v", inputPath, err)
			matchesData = gin.H{"error": err.Error()}
			return
		}
		matchesData = matches
	}()
	wg.Wait()

	success(c, http.StatusOK, gin.H{
		"input_image":  inputPath,
		"labels":       labelsData,
		"faces":        facesData,
		"face_matches": matchesData,
	})
}

// SaveAnalyzedImage annotates the image with bounding boxes and saves it.
func (a *API) SaveAnalyzedImage(c *gin.Context) {
	inputPath := c.DefaultQuery("input_path", config.INPUT_PATH)
	outputPath := c.DefaultQuery("output_path", config.OUTPUT_PATH)
	knownFacesDir := c.DefaultQuery("known_faces_dir", config.REFERENCE_DIR)
	if !inputExists(c, inputPath, "Input image") {
		return
	}
	if !inputExists(c, knownFacesDir, "Known faces directory") {
		return
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		fail(c, http.StatusInternalServerError, "Error creating output directory: "+err.Error())
		return
	}

	annotated, err := a.Eyes.DrawBoundingBoxes(inputPath, knownFacesDir)
	if err != nil {
		if errors.Is(err, recognition.ErrInputNotFound) {
			fail(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error annotating %s: %v", inputPath, err)
		fail(c, http.StatusInternalServerError, "Error saving analyzed image: "+err.Error())
		return
	}
	if err := imaging.Save(annotated, outputPath); err != nil {
		fail(c, http.StatusInternalServerError, "Error saving analyzed image: "+err.Error())
		return
	}
	success(c, http.StatusCreated, gin.H{"input_image": inputPath, "output_image": outputPath})
}

// GetAnalyzedImage serves the most recently saved annotated image.
func (a *API) GetAnalyzedImage(c *gin.Context) {
	if _, err := os.Stat(config.OUTPUT_PATH); err != nil {
		fail(c, http.StatusNotFound, "Analyzed image not found. Please ensure image analysis has been completed.")
		return
	}
	c.FileAttachment(config.OUTPUT_PATH, filepath.Base(config.OUTPUT_PATH))
}
