package recognition

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"brutus/config"
	"brutus/geometry"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/rekognition"
	"github.com/disintegration/imaging"
)

// animalLabels is the fixed label set that counts as an animal when deciding
// which overlay layers to draw.
var animalLabels = map[string]bool{
	"Animal": true,
	"Pet":    true,
	"Dog":    true,
	"Cat":    true,
	"Bird":   true,
	"Bear":   true,
	"Snake":  true,
}

type overlayKind int

const (
	overlayRecognizedFace overlayKind = iota
	overlayUnrecognizedFace
	overlayAnimal
	overlayObject
)

// overlay is one recorded draw operation: a box plus its label text.
// Building overlays is kept separate from rasterizing them so the layering
// rules can be tested without pushing pixels.
type overlay struct {
	Kind overlayKind
	Box  geometry.Box
	Text string
}

// DrawBoundingBoxes runs the three detections against one EXIF-corrected
// copy of the image and returns a fresh raster with colored boxes:
// orange for recognized faces, red for unrecognized faces, blue for animals,
// and green for other objects only when no humans or animals are present.
func (c *Client) DrawBoundingBoxes(targetPath, libraryDir string) (image.Image, error) {
	targetBytes, err := SourceImage(targetPath)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(targetBytes))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", targetPath, err)
	}

	faces := c.detectFaceDetailsBytes(targetBytes)
	labels, err := c.detectLabelsBytes(targetBytes, float64(config.MIN_LABEL_CONFIDENCE))
	if err != nil {
		return nil, err
	}
	comparison, err := c.compareWithLibraryBytes(targetBytes, libraryDir, config.SIMILARITY_THRESHOLD)
	if err != nil {
		return nil, err
	}

	recognized := map[string]string{}
	if len(faces.Faces) > 0 {
		recognized = c.recognizedFaceBoxes(comparison.Matches, libraryDir, targetBytes)
	}

	overlays := buildOverlays(faces.Faces, labels, recognized)
	return renderOverlays(img, overlays), nil
}

// recognizedFaceBoxes recovers which target bounding box belongs to each
// matched identity. The library matcher only reports identity and score, so
// every match needs one more direct comparison to get target geometry back.
// The lookup is keyed by the exact box key.
func (c *Client) recognizedFaceBoxes(matches []PersonMatch, libraryDir string, targetBytes []byte) map[string]string {
	recognized := map[string]string{}
	for _, match := range matches {
		referencePath, ok := referenceImagePath(libraryDir, match.Person)
		if !ok {
			log.Printf("No reference image found for %s", match.Person)
			continue
		}
		box, err := c.matchedFaceBox(referencePath, targetBytes)
		if err != nil {
			log.Printf("Error comparing faces for %s: %v", match.Person, err)
			continue
		}
		if box != nil {
			recognized[box.Key()] = match.Person
		}
	}
	return recognized
}

// matchedFaceBox returns the target bounding box of the first face match
// between the reference image and the target, or nil when nothing matches
// at the annotation threshold.
func (c *Client) matchedFaceBox(referencePath string, targetBytes []byte) (*geometry.Box, error) {
	referenceBytes, err := SourceImage(referencePath)
	if err != nil {
		return nil, err
	}
	out, err := c.api.CompareFaces(&rekognition.CompareFacesInput{
		SourceImage:         &rekognition.Image{Bytes: referenceBytes},
		TargetImage:         &rekognition.Image{Bytes: targetBytes},
		SimilarityThreshold: aws.Float64(config.ANNOTATE_MATCH_THRESHOLD),
	})
	if err != nil {
		return nil, err
	}
	if len(out.FaceMatches) == 0 || out.FaceMatches[0].Face == nil || out.FaceMatches[0].Face.BoundingBox == nil {
		return nil, nil
	}
	box := boxFromAWS(out.FaceMatches[0].Face.BoundingBox)
	return &box, nil
}

// referenceImagePath finds the library file whose stem is the person name,
// trying each recognized extension.
func referenceImagePath(libraryDir, person string) (string, bool) {
	for _, ext := range []string{".jpg", ".jpeg", ".png"} {
		path := filepath.Join(libraryDir, person+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// buildOverlays applies the layering rules:
//  1. every detected face is drawn, recognized ones labeled
//     "{face_number}-{person}", the rest with just their number;
//  2. animal instances are drawn whenever any animal label is present;
//  3. remaining object instances are drawn only when the image holds
//     neither humans nor animals - generic boxes never compete with people
//     or animals for attention.
func buildOverlays(faces []FaceAnalysis, labels []ConsolidatedLabel, recognized map[string]string) []overlay {
	hasHumans := len(faces) > 0
	hasAnimals := false
	for _, label := range labels {
		if animalLabels[label.Name] && len(label.Instances) > 0 {
			hasAnimals = true
			break
		}
	}

	overlays := []overlay{}
	if hasHumans {
		for _, face := range faces {
			if person, ok := recognizedPerson(face.BoundingBox, recognized); ok {
				overlays = append(overlays, overlay{
					Kind: overlayRecognizedFace,
					Box:  face.BoundingBox,
					Text: fmt.Sprintf("%d-%s", face.FaceNumber, person),
				})
			} else {
				overlays = append(overlays, overlay{
					Kind: overlayUnrecognizedFace,
					Box:  face.BoundingBox,
					Text: strconv.Itoa(face.FaceNumber),
				})
			}
		}
	}
	if hasAnimals {
		for _, label := range labels {
			if !animalLabels[label.Name] {
				continue
			}
			for _, instance := range label.Instances {
				overlays = append(overlays, overlay{
					Kind: overlayAnimal,
					Box:  instance.BoundingBox,
					Text: strconv.Itoa(instance.LabelNumber),
				})
			}
		}
	}
	if !hasHumans && !hasAnimals {
		for _, label := range labels {
			for _, instance := range label.Instances {
				overlays = append(overlays, overlay{
					Kind: overlayObject,
					Box:  instance.BoundingBox,
					Text: strconv.Itoa(instance.LabelNumber),
				})
			}
		}
	}
	return overlays
}

// recognizedPerson looks a face box up in the recognized map, first by exact
// key, then by axis-wise equivalence. The detection and comparison calls can
// report marginally different geometry for the same physical face; the
// approximate pass keeps a recognized identity from degrading to a red box
// over a rounding difference.
func recognizedPerson(box geometry.Box, recognized map[string]string) (string, bool) {
	if person, ok := recognized[box.Key()]; ok {
		return person, true
	}
	for key, person := range recognized {
		candidate, ok := geometry.BoxFromKey(key)
		if !ok {
			continue
		}
		if geometry.Equivalent(box, candidate, geometry.DefaultTolerance) {
			return person, true
		}
	}
	return "", false
}
