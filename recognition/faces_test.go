package recognition

import (
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/rekognition"
)

func fullFaceDetail() *rekognition.FaceDetail {
	return &rekognition.FaceDetail{
		BoundingBox: awsBox(0.2, 0.1, 0.3, 0.4),
		AgeRange:    &rekognition.AgeRange{Low: aws.Int64(25), High: aws.Int64(35)},
		Gender:      &rekognition.Gender{Value: aws.String("Female"), Confidence: aws.Float64(99.2)},
		Emotions: []*rekognition.Emotion{
			{Type: aws.String("HAPPY"), Confidence: aws.Float64(88.1)},
			{Type: aws.String("CALM"), Confidence: aws.Float64(95.5)},
		},
		Eyeglasses: &rekognition.Eyeglasses{Value: aws.Bool(true), Confidence: aws.Float64(97.0)},
		Smile:      &rekognition.Smile{Value: aws.Bool(true), Confidence: aws.Float64(91.3)},
	}
}

func TestNormalizeFaces(t *testing.T) {
	result := normalizeFaces([]*rekognition.FaceDetail{fullFaceDetail(), {}})

	if result.FacesFound != 2 || len(result.Faces) != 2 {
		t.Fatalf("faces_found = %d with %d faces, want both 2", result.FacesFound, len(result.Faces))
	}

	first := result.Faces[0]
	if first.FaceNumber != 1 {
		t.Errorf("face_number = %d, want 1", first.FaceNumber)
	}
	if first.AgeRange.Low != 25 || first.AgeRange.High != 35 {
		t.Errorf("age_range = %+v, want 25-35", first.AgeRange)
	}
	if first.Gender != "Female" {
		t.Errorf("gender = %q, want Female", first.Gender)
	}
	// Primary emotion is the first entry in recognizer order, even when a
	// later entry has higher confidence.
	if first.PrimaryEmotion != "HAPPY" || first.EmotionConfidence != 88.1 {
		t.Errorf("primary emotion = %q/%v, want HAPPY/88.1", first.PrimaryEmotion, first.EmotionConfidence)
	}
	if got := first.Characteristics["eyeglasses"]; !got.Value || got.Confidence != 97.0 {
		t.Errorf("eyeglasses = %+v, want {true 97}", got)
	}
	if got := first.Characteristics["beard"]; got.Value || got.Confidence != 0 {
		t.Errorf("absent beard should default to {false 0}, got %+v", got)
	}

	second := result.Faces[1]
	if second.FaceNumber != 2 {
		t.Errorf("face_number = %d, want 2", second.FaceNumber)
	}
	traits := []string{"eyeglasses", "sunglasses", "beard", "mustache", "eyes_open", "mouth_open", "smile", "face_occluded"}
	for _, trait := range traits {
		got, ok := second.Characteristics[trait]
		if !ok {
			t.Errorf("trait %q missing from empty face detail", trait)
			continue
		}
		if got.Value || got.Confidence != 0 {
			t.Errorf("trait %q = %+v, want zero defaults", trait, got)
		}
	}
}

func TestNormalizeFacesEmpty(t *testing.T) {
	result := normalizeFaces(nil)
	if result.FacesFound != 0 || len(result.Faces) != 0 || result.Error != "" {
		t.Errorf("empty detection should be a valid empty result, got %+v", result)
	}
}

func TestDetectFaceDetailsErrorIsInBand(t *testing.T) {
	fake := &fakeRecognizer{
		detectFaces: func(*rekognition.DetectFacesInput) (*rekognition.DetectFacesOutput, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	c := NewClientWithAPI(fake)
	result := c.DetectFaceDetails(testImagePath(t, 64))
	if result.Error == "" || !strings.Contains(result.Error, "quota exceeded") {
		t.Errorf("expected in-band error, got %+v", result)
	}
	if result.FacesFound != 0 || len(result.Faces) != 0 {
		t.Errorf("failed detection must not fabricate faces: %+v", result)
	}
}

func TestDetectFaceDetailsMissingInput(t *testing.T) {
	c := NewClientWithAPI(&fakeRecognizer{})
	result := c.DetectFaceDetails("does/not/exist.jpg")
	if result.Error == "" {
		t.Fatal("expected in-band error for missing input")
	}
}
