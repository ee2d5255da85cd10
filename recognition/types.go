package recognition

import (
	"brutus/geometry"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/rekognition"
)

// LabelInstance is one concrete occurrence of a label within the image.
// LabelNumber is 1-based and shared across the whole image, so annotation
// text can cross-reference the JSON output.
type LabelInstance struct {
	BoundingBox geometry.Box `json:"BoundingBox"`
	Confidence  float64      `json:"Confidence"`
	LabelNumber int          `json:"label_number"`
}

// ConsolidatedLabel is one base concept with every related detection folded
// into it.
type ConsolidatedLabel struct {
	Name          string          `json:"Name"`
	Confidence    float64         `json:"Confidence"`
	RelatedLabels []string        `json:"RelatedLabels"`
	Instances     []LabelInstance `json:"Instances"`
	Parents       []string        `json:"Parents"`
}

// AgeRange mirrors the recognizer's estimated age interval.
type AgeRange struct {
	Low  int64 `json:"Low"`
	High int64 `json:"High"`
}

// Characteristic is one yes/no face trait with its confidence.
type Characteristic struct {
	Value      bool    `json:"value"`
	Confidence float64 `json:"confidence"`
}

// FaceAnalysis is the normalized record for one detected face.
type FaceAnalysis struct {
	FaceNumber        int                       `json:"face_number"`
	BoundingBox       geometry.Box              `json:"BoundingBox"`
	AgeRange          AgeRange                  `json:"age_range"`
	Gender            string                    `json:"gender"`
	PrimaryEmotion    string                    `json:"primary_emotion"`
	EmotionConfidence float64                   `json:"emotion_confidence"`
	Characteristics   map[string]Characteristic `json:"characteristics"`
}

// FaceDetailsResult carries a face detection outcome. A failed recognizer
// call is reported in Error rather than as a Go error, so a composite
// analysis can still render "no faces" gracefully.
type FaceDetailsResult struct {
	FacesFound int            `json:"faces_found"`
	Faces      []FaceAnalysis `json:"faces"`
	Error      string         `json:"error,omitempty"`
}

// PersonMatch is the best known match for one reference identity.
type PersonMatch struct {
	Person     string  `json:"person"`
	Similarity float64 `json:"similarity"`
	Confidence float64 `json:"confidence"`
}

// LibraryMatchResult lists which known identities appear somewhere in the
// target image - one entry per identity, not one per target face. A target
// with no detectable faces yields Error == NoFacesDetected.
type LibraryMatchResult struct {
	MatchesFound int           `json:"matches_found"`
	Matches      []PersonMatch `json:"matches"`
	Error        string        `json:"error,omitempty"`
}

func boxFromAWS(b *rekognition.BoundingBox) geometry.Box {
	if b == nil {
		return geometry.Box{}
	}
	return geometry.Box{
		Left:   aws.Float64Value(b.Left),
		Top:    aws.Float64Value(b.Top),
		Width:  aws.Float64Value(b.Width),
		Height: aws.Float64Value(b.Height),
	}
}
