package utils

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
)

type ThumbnailInfo struct {
	ThumbSize int64
	NewX      int
	NewY      int
	OldX      int
	OldY      int
}

// Thumbnail scales the image down to fit a size x size square, preserving
// aspect ratio, and writes it as JPEG. Returns the old and new dimensions.
func Thumbnail(size uint, reader io.Reader, writer io.Writer) (result ThumbnailInfo, err error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return result, err
	}
	thumb := resize.Thumbnail(size, size, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 90}); err != nil {
		return
	}

	newRect := thumb.Bounds().Size()
	result.NewX = newRect.X
	result.NewY = newRect.Y
	oldRect := img.Bounds().Size()
	result.OldX = oldRect.X
	result.OldY = oldRect.Y

	result.ThumbSize, err = io.Copy(writer, &buf)
	return
}
