package recognition

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// labelOffset is how far above the box top edge the label text sits.
const labelOffset = 20

type overlayStyle struct {
	Color  color.NRGBA
	Stroke int
	Plate  bool // opaque background behind the text for legibility
}

var overlayStyles = map[overlayKind]overlayStyle{
	overlayRecognizedFace:   {Color: color.NRGBA{R: 255, G: 165, A: 255}, Stroke: 5},
	overlayUnrecognizedFace: {Color: color.NRGBA{R: 255, A: 255}, Stroke: 2, Plate: true},
	overlayAnimal:           {Color: color.NRGBA{B: 255, A: 255}, Stroke: 2, Plate: true},
	overlayObject:           {Color: color.NRGBA{G: 128, A: 255}, Stroke: 2, Plate: true},
}

// renderOverlays draws every overlay onto a copy of the source image. The
// source is never mutated.
func renderOverlays(src image.Image, overlays []overlay) *image.NRGBA {
	img := imaging.Clone(src)
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	for _, ov := range overlays {
		style := overlayStyles[ov.Kind]
		left, top, right, bottom := ov.Box.Pixels(width, height)
		drawRect(img, left, top, right, bottom, style.Color, style.Stroke)
		drawText(img, left, top, ov.Text, style.Color, style.Plate)
	}
	return img
}

func drawRect(img *image.NRGBA, left, top, right, bottom int, col color.NRGBA, stroke int) {
	for x := left; x <= right; x++ {
		for i := 0; i < stroke; i++ {
			setPixel(img, x, top+i, col)
			setPixel(img, x, bottom-i, col)
		}
	}
	for y := top; y <= bottom; y++ {
		for i := 0; i < stroke; i++ {
			setPixel(img, left+i, y, col)
			setPixel(img, right-i, y, col)
		}
	}
}

func setPixel(img *image.NRGBA, x, y int, col color.NRGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetNRGBA(x, y, col)
	}
}

// drawText anchors the text just above the box top edge, clamped so it stays
// within image bounds for boxes near the top.
func drawText(img *image.NRGBA, left, top int, text string, col color.NRGBA, plate bool) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()

	baseline := top - labelOffset + ascent
	if baseline < ascent {
		baseline = ascent
	}

	if plate {
		textWidth := font.MeasureString(face, text).Ceil()
		plateRect := image.Rect(left-2, baseline-ascent-2, left+textWidth+2, baseline+descent+2)
		draw.Draw(img, plateRect.Intersect(img.Bounds()), image.NewUniform(color.NRGBA{A: 255}), image.Point{}, draw.Src)
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(left, baseline),
	}
	d.DrawString(text)
}
