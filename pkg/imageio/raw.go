package imageio

import (
	"fmt"
	"io"
	"math"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

// Metadata describes how a raw image was rendered
type Metadata struct {
	Seed            int64
	SamplesPerPixel int
}

// rawImage is the on-disk layout of a raw linear dump
type rawImage struct {
	Width   int       `cbor:"width"`
	Height  int       `cbor:"height"`
	Seed    int64     `cbor:"seed"`
	Samples int       `cbor:"samples"`
	Pixels  []float64 `cbor:"pixels"` // RGB triples, row-major
}

// WriteRaw writes the averaged linear colors of img as zstd compressed CBOR
func WriteRaw(w io.Writer, img *renderer.Image, meta Metadata) error {
	doc := rawImage{
		Width:   img.Width,
		Height:  img.Height,
		Seed:    meta.Seed,
		Samples: meta.SamplesPerPixel,
		Pixels:  make([]float64, 0, 3*len(img.Pixels)),
	}
	for _, p := range img.Pixels {
		doc.Pixels = append(doc.Pixels, p.X, p.Y, p.Z)
	}

	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if err := cbor.NewEncoder(encoder).Encode(doc); err != nil {
		encoder.Close()
		return fmt.Errorf("encoding raw image: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("closing zstd writer: %w", err)
	}
	return nil
}

// ReadRaw reads an image written by WriteRaw
func ReadRaw(r io.Reader) (*renderer.Image, Metadata, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer decoder.Close()

	var doc rawImage
	if err := cbor.NewDecoder(decoder).Decode(&doc); err != nil {
		return nil, Metadata{}, fmt.Errorf("decoding raw image: %w", err)
	}

	if doc.Width <= 0 || doc.Height <= 0 || doc.Width > math.MaxInt/3/doc.Height {
		return nil, Metadata{}, fmt.Errorf("raw image has invalid size %dx%d", doc.Width, doc.Height)
	}
	if len(doc.Pixels) != 3*doc.Width*doc.Height {
		return nil, Metadata{}, fmt.Errorf("raw image %dx%d has %d channels, want %d",
			doc.Width, doc.Height, len(doc.Pixels), 3*doc.Width*doc.Height)
	}

	img := renderer.NewImage(doc.Width, doc.Height)
	for k := range img.Pixels {
		img.Pixels[k] = core.NewVec3(doc.Pixels[3*k], doc.Pixels[3*k+1], doc.Pixels[3*k+2])
	}

	return img, Metadata{Seed: doc.Seed, SamplesPerPixel: doc.Samples}, nil
}
