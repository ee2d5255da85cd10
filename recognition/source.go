package recognition

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// SourceImage loads an image file and returns JPEG bytes with the EXIF
// orientation applied, so the recognizer and the annotator always see the
// same geometry regardless of capture orientation. Images without EXIF data
// pass through unrotated.
func SourceImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	img = orientImage(img, readOrientation(data))

	buf := bytes.Buffer{}
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// readOrientation returns the EXIF orientation tag (274), or 0 when the
// image carries no usable EXIF data.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return orientation
}

// orientImage undoes the camera rotation recorded in the orientation tag:
// 3 -> 180, 6 -> 270 and 8 -> 90 degrees counter-clockwise. Other values
// (including the mirrored ones) are left untouched.
func orientImage(img image.Image, orientation int) image.Image {
	switch orientation {
	case 3:
		return imaging.Rotate180(img)
	case 6:
		return imaging.Rotate270(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}
