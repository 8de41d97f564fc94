package renderer

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/df07/sphere-pathtracer/pkg/core"
)

// Image is a row-major buffer of linear colors starting at the top-left pixel
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the linear color of pixel (i, j)
func (img *Image) At(i, j int) core.Vec3 {
	return img.Pixels[j*img.Width+i]
}

// Set stores the linear color of pixel (i, j)
func (img *Image) Set(i, j int, color core.Vec3) {
	img.Pixels[j*img.Width+i] = color
}

// Checksum hashes the dimensions and the exact bits of every channel.
// Two renders with the same checksum are bit-identical.
func (img *Image) Checksum() uint64 {
	h := xxhash.New()
	var buf [8]byte

	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}

	writeUint(uint64(img.Width))
	writeUint(uint64(img.Height))
	for _, p := range img.Pixels {
		writeUint(math.Float64bits(p.X))
		writeUint(math.Float64bits(p.Y))
		writeUint(math.Float64bits(p.Z))
	}
	return h.Sum64()
}
