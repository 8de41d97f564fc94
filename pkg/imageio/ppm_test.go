package imageio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

func testImage() *renderer.Image {
	img := renderer.NewImage(2, 2)
	img.Set(0, 0, core.NewVec3(1, 0, 0))
	img.Set(1, 0, core.NewVec3(0.25, 0.25, 0.25))
	img.Set(0, 1, core.NewVec3(-1, 0, 4))
	img.Set(1, 1, core.NewVec3(0, 0, 0))
	return img
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, testImage()))

	expected := "P3\n2 2\n255\n" +
		"255 0 0\n" +
		"128 128 128\n" +
		"0 0 255\n" +
		"0 0 0\n"
	assert.Equal(t, expected, buf.String())
}

func TestWritePPM_LineCount(t *testing.T) {
	img := renderer.NewImage(5, 3)
	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, img))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3+5*3)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePPM_WriterError(t *testing.T) {
	assert.Error(t, WritePPM(failingWriter{}, testImage()))
}
