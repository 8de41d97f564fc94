package imageio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

// WritePPM writes img as a plain-text P3 raster, one "R G B" line per pixel
// in row-major order from the top-left
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}

	for _, pixel := range img.Pixels {
		r, g, b := core.Quantize(pixel)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return fmt.Errorf("writing ppm pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing ppm: %w", err)
	}
	return nil
}
