package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

// ToRGBA converts the linear image to gamma corrected 8-bit RGBA
func ToRGBA(img *renderer.Image) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for j := 0; j < img.Height; j++ {
		for i := 0; i < img.Width; i++ {
			r, g, b := core.Quantize(img.At(i, j))
			rgba.SetRGBA(i, j, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return rgba
}

// WritePNG encodes img as a PNG
func WritePNG(w io.Writer, img *renderer.Image) error {
	if err := png.Encode(w, ToRGBA(img)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
