package imaging

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// FitSize returns the dimensions of a w x h image scaled to fit inside
// maxW x maxH. Images already within bounds keep their size. Non-positive
// bounds are treated as unlimited on that axis.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	if maxW <= 0 {
		maxW = w
	}
	if maxH <= 0 {
		maxH = h
	}
	if w <= maxW && h <= maxH {
		return w, h
	}

	ratio := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(math.Round(float64(w)*ratio)))
	nh := max(1, int(math.Round(float64(h)*ratio)))
	return min(nw, maxW), min(nh, maxH)
}

// Fit scales img into maxW x maxH with bilinear interpolation.
// It returns img unchanged when no resize is needed.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	nw, nh := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	if nw == b.Dx() && nh == b.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
