package recognition

import (
	"bytes"
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestSourceImageMissingFile(t *testing.T) {
	_, err := SourceImage("does/not/exist.jpg")
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("err = %v, want ErrInputNotFound", err)
	}
}

func TestSourceImageReturnsDecodableJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.png")
	writeTestImage(t, path, 64)

	data, err := SourceImage(path)
	if err != nil {
		t.Fatalf("SourceImage: %v", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output bytes are not a decodable image: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48 (no EXIF means no rotation)",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestOrientImage(t *testing.T) {
	// 2x1 image: white pixel left, black pixel right
	src := imaging.New(2, 1, color.NRGBA{A: 255})
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	tests := []struct {
		orientation    int
		wantW, wantH   int
		whiteX, whiteY int
		description    string
	}{
		{1, 2, 1, 0, 0, "normal orientation untouched"},
		{0, 2, 1, 0, 0, "missing orientation untouched"},
		{3, 2, 1, 1, 0, "180 degrees flips horizontally"},
		{6, 1, 2, 0, 0, "270 CCW puts left pixel on top"},
		{8, 1, 2, 0, 1, "90 CCW puts left pixel on bottom"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			out := imaging.Clone(orientImage(src, tt.orientation))
			if out.Bounds().Dx() != tt.wantW || out.Bounds().Dy() != tt.wantH {
				t.Fatalf("orientation %d: dimensions = %dx%d, want %dx%d",
					tt.orientation, out.Bounds().Dx(), out.Bounds().Dy(), tt.wantW, tt.wantH)
			}
			if got := out.NRGBAAt(tt.whiteX, tt.whiteY); got != white {
				t.Errorf("orientation %d: pixel at (%d,%d) = %+v, want white",
					tt.orientation, tt.whiteX, tt.whiteY, got)
			}
		})
	}
}
