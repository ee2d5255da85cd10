package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	BIND_ADDRESS = "0.0.0.0:8000"
	DEBUG_MODE   = true
	AWS_REGION   = "eu-central-1"
	// Minimum confidence (0-100) for a label to be returned at all
	MIN_LABEL_CONFIDENCE = 90
	// Minimum similarity (0-100) for a library face comparison to count as a match
	SIMILARITY_THRESHOLD = 85.0
	// Threshold used when re-comparing a recognised identity to recover its
	// bounding box during annotation. Kept lower than SIMILARITY_THRESHOLD so
	// an identity that cleared the match threshold is not lost at draw time.
	ANNOTATE_MATCH_THRESHOLD = 80.0
	INPUT_PATH               = "input/input_image.jpg"
	OUTPUT_PATH              = "output/analyzed_image.jpg"
	REFERENCE_DIR            = "reference_library"
	SPEECH_VOICE             = "Matthew"
	SPEECH_RATE              = 85 // percent
	SPEECH_OUTPUT_DIR        = "output"
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("AWS_REGION", &AWS_REGION)
	readEnvInt("MIN_LABEL_CONFIDENCE", &MIN_LABEL_CONFIDENCE)
	readEnvFloat("SIMILARITY_THRESHOLD", &SIMILARITY_THRESHOLD)
	readEnvFloat("ANNOTATE_MATCH_THRESHOLD", &ANNOTATE_MATCH_THRESHOLD)
	readEnvString("INPUT_PATH", &INPUT_PATH)
	readEnvString("OUTPUT_PATH", &OUTPUT_PATH)
	readEnvString("REFERENCE_DIR", &REFERENCE_DIR)
	readEnvString("SPEECH_VOICE", &SPEECH_VOICE)
	readEnvInt("SPEECH_RATE", &SPEECH_RATE)
	readEnvString("SPEECH_OUTPUT_DIR", &SPEECH_OUTPUT_DIR)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvFloat(name string, value *float64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return
	}
	*value = f
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}
