package imageio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

// ErrUnknownFormat is returned for file extensions with no encoder
var ErrUnknownFormat = errors.New("unknown image format")

// Format identifies an output encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
	FormatRaw Format = "zst"
)

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".zst":
		return FormatRaw, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Save writes img to path in the format implied by its extension,
// creating parent directories as needed
func Save(path string, img *renderer.Image, meta Metadata) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	switch format {
	case FormatPPM:
		return WritePPM(file, img)
	case FormatPNG:
		return WritePNG(file, img)
	default:
		return WriteRaw(file, img, meta)
	}
}

// Load reads a raw linear dump from path
func Load(path string) (*renderer.Image, Metadata, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, Metadata{}, err
	}
	if format != FormatRaw {
		return nil, Metadata{}, fmt.Errorf("%w: only .zst dumps can be loaded, got %q", ErrUnknownFormat, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	return ReadRaw(file)
}
