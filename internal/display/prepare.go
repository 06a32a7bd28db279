package display

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Target frame size, matching the panel resolution.
const (
	TargetWidth  = 400
	TargetHeight = 300
)

// Palette is the fixed 4-color panel palette: white, black, red, and a
// reserved slot (black).
var Palette = color.Palette{
	color.RGBA{255, 255, 255, 255},
	color.RGBA{0, 0, 0, 255},
	color.RGBA{255, 0, 0, 255},
	color.RGBA{0, 0, 0, 255},
}

// Prepare converts an arbitrary comic image into a panel frame: aspect
// resize so the matching dimension hits the target, center crop (or pad
// on white, when the other dimension falls short), nearest-color
// quantization to Palette, and a 180 degree rotation so the frame is
// upright in the panel mount.
func Prepare(src image.Image) *image.Paletted {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var newW, newH int
	if w > h {
		// landscape: width hits the target, height scales along
		newW = TargetWidth
		newH = int(float64(h) / float64(w) * float64(TargetWidth))
	} else {
		newH = TargetHeight
		newW = int(float64(w) / float64(h) * float64(TargetHeight))
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	resized := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(resized, resized.Bounds(), src, b, draw.Src, nil)

	canvas := image.NewRGBA(image.Rect(0, 0, TargetWidth, TargetHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(Palette[0]), image.Point{}, draw.Src)

	offX := (TargetWidth - newW) / 2
	offY := (TargetHeight - newH) / 2
	target := image.Rect(offX, offY, offX+newW, offY+newH)
	draw.Draw(canvas, target, resized, image.Point{}, draw.Src)

	out := image.NewPaletted(image.Rect(0, 0, TargetWidth, TargetHeight), Palette)
	for y := 0; y < TargetHeight; y++ {
		for x := 0; x < TargetWidth; x++ {
			idx := uint8(Palette.Index(canvas.At(x, y)))
			out.SetColorIndex(TargetWidth-1-x, TargetHeight-1-y, idx)
		}
	}

	return out
}
