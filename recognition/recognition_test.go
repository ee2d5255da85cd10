package recognition

import (
	"image"
	"image/color"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/rekognition"
	"github.com/disintegration/imaging"
)

// fakeRecognizer implements RecognizerAPI with pluggable responses and call
// counters, so tests can assert which recognizer operations actually ran.
type fakeRecognizer struct {
	detectLabels func(*rekognition.DetectLabelsInput) (*rekognition.DetectLabelsOutput, error)
	detectFaces  func(*rekognition.DetectFacesInput) (*rekognition.DetectFacesOutput, error)
	compareFaces func(*rekognition.CompareFacesInput) (*rekognition.CompareFacesOutput, error)

	detectLabelsCalls int32
	detectFacesCalls  int32
	compareFacesCalls int32
}

func (f *fakeRecognizer) DetectLabels(in *rekognition.DetectLabelsInput) (*rekognition.DetectLabelsOutput, error) {
	atomic.AddInt32(&f.detectLabelsCalls, 1)
	if f.detectLabels == nil {
		return &rekognition.DetectLabelsOutput{}, nil
	}
	return f.detectLabels(in)
}

func (f *fakeRecognizer) DetectFaces(in *rekognition.DetectFacesInput) (*rekognition.DetectFacesOutput, error) {
	atomic.AddInt32(&f.detectFacesCalls, 1)
	if f.detectFaces == nil {
		return &rekognition.DetectFacesOutput{}, nil
	}
	return f.detectFaces(in)
}

func (f *fakeRecognizer) CompareFaces(in *rekognition.CompareFacesInput) (*rekognition.CompareFacesOutput, error) {
	atomic.AddInt32(&f.compareFacesCalls, 1)
	if f.compareFaces == nil {
		return &rekognition.CompareFacesOutput{}, nil
	}
	return f.compareFaces(in)
}

// writeTestImage saves a small solid image; width lets fakes distinguish
// which file the bytes came from after the JPEG round trip.
func writeTestImage(t *testing.T, path string, width int) {
	t.Helper()
	img := imaging.New(width, 48, color.NRGBA{R: 200, G: 180, B: 160, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("writing test image %s: %v", path, err)
	}
}

func testImagePath(t *testing.T, width int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.jpg")
	writeTestImage(t, path, width)
	return path
}

func testSolidImage(width, height int) *image.NRGBA {
	return imaging.New(width, height, color.NRGBA{R: 200, G: 180, B: 160, A: 255})
}

func toNRGBA(t *testing.T, img image.Image) *image.NRGBA {
	t.Helper()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("annotated image is %T, want *image.NRGBA", img)
	}
	return nrgba
}

func awsBox(left, top, width, height float64) *rekognition.BoundingBox {
	return &rekognition.BoundingBox{
		Left:   aws.Float64(left),
		Top:    aws.Float64(top),
		Width:  aws.Float64(width),
		Height: aws.Float64(height),
	}
}

func rawLabel(name string, confidence float64, parents []string, boxes ...*rekognition.BoundingBox) *rekognition.Label {
	l := &rekognition.Label{
		Name:       aws.String(name),
		Confidence: aws.Float64(confidence),
	}
	for _, p := range parents {
		l.Parents = append(l.Parents, &rekognition.Parent{Name: aws.String(p)})
	}
	for _, b := range boxes {
		l.Instances = append(l.Instances, &rekognition.Instance{
			BoundingBox: b,
			Confidence:  aws.Float64(confidence),
		})
	}
	return l
}
