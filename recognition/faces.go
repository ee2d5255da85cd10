package recognition

import (
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/rekognition"
)

// DetectFaceDetails detects faces and returns their normalized attributes.
// A failed call is reported in the result's Error field instead of aborting,
// so composite analyses can carry on with the other detections.
func (c *Client) DetectFaceDetails(path string) FaceDetailsResult {
	imageBytes, err := SourceImage(path)
	if err != nil {
		return FaceDetailsResult{Error: err.Error()}
	}
	return c.detectFaceDetailsBytes(imageBytes)
}

func (c *Client) detectFaceDetailsBytes(imageBytes []byte) FaceDetailsResult {
	out, err := c.api.DetectFaces(&rekognition.DetectFacesInput{
		Image:      &rekognition.Image{Bytes: imageBytes},
		Attributes: []*string{aws.String(rekognition.AttributeAll)},
	})
	if err != nil {
		log.Printf("Face detection failed: %v", err)
		return FaceDetailsResult{Error: err.Error()}
	}
	return normalizeFaces(out.FaceDetails)
}

// normalizeFaces maps raw face details onto the stable face-record shape.
// Face numbers are 1-based in response order. The primary emotion is the
// first entry in recognizer order; the recognizer already ranks emotions by
// confidence, so first-in-list is also top-1. Absent characteristics default
// to {false, 0} rather than being dropped.
func normalizeFaces(details []*rekognition.FaceDetail) FaceDetailsResult {
	faces := make([]FaceAnalysis, 0, len(details))
	for i, face := range details {
		analysis := FaceAnalysis{
			FaceNumber:  i + 1,
			BoundingBox: boxFromAWS(face.BoundingBox),
			Characteristics: map[string]Characteristic{
				"eyeglasses":    {},
				"sunglasses":    {},
				"beard":         {},
				"mustache":      {},
				"eyes_open":     {},
				"mouth_open":    {},
				"smile":         {},
				"face_occluded": {},
			},
		}
		if face.AgeRange != nil {
			analysis.AgeRange = AgeRange{
				Low:  aws.Int64Value(face.AgeRange.Low),
				High: aws.Int64Value(face.AgeRange.High),
			}
		}
		if face.Gender != nil {
			analysis.Gender = aws.StringValue(face.Gender.Value)
		}
		if len(face.Emotions) > 0 {
			analysis.PrimaryEmotion = aws.StringValue(face.Emotions[0].Type)
			analysis.EmotionConfidence = aws.Float64Value(face.Emotions[0].Confidence)
		}
		if face.Eyeglasses != nil {
			analysis.Characteristics["eyeglasses"] = characteristic(face.Eyeglasses.Value, face.Eyeglasses.Confidence)
		}
		if face.Sunglasses != nil {
			analysis.Characteristics["sunglasses"] = characteristic(face.Sunglasses.Value, face.Sunglasses.Confidence)
		}
		if face.Beard != nil {
			analysis.Characteristics["beard"] = characteristic(face.Beard.Value, face.Beard.Confidence)
		}
		if face.Mustache != nil {
			analysis.Characteristics["mustache"] = characteristic(face.Mustache.Value, face.Mustache.Confidence)
		}
		if face.EyesOpen != nil {
			analysis.Characteristics["eyes_open"] = characteristic(face.EyesOpen.Value, face.EyesOpen.Confidence)
		}
		if face.MouthOpen != nil {
			analysis.Characteristics["mouth_open"] = characteristic(face.MouthOpen.Value, face.MouthOpen.Confidence)
		}
		if face.Smile != nil {
			analysis.Characteristics["smile"] = characteristic(face.Smile.Value, face.Smile.Confidence)
		}
		if face.FaceOccluded != nil {
			analysis.Characteristics["face_occluded"] = characteristic(face.FaceOccluded.Value, face.FaceOccluded.Confidence)
		}
		faces = append(faces, analysis)
	}
	return FaceDetailsResult{FacesFound: len(faces), Faces: faces}
}

func characteristic(value *bool, confidence *float64) Characteristic {
	return Characteristic{
		Value:      aws.BoolValue(value),
		Confidence: aws.Float64Value(confidence),
	}
}
