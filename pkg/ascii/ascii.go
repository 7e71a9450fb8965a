// Package ascii turns raster images into character art.
package ascii

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"gonum.org/v1/gonum/stat"
)

// Ramp maps brightness to characters, darkest first.
const Ramp = " .,-~:;=!*#$@"

// DefaultWidth is the output width in characters.
const DefaultWidth = 80

var supportedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// Options controls a conversion
type Options struct {
	Width int
	// Normalize stretches brightness between the 2nd and 98th percentile
	// before mapping, which helps washed-out photos.
	Normalize bool
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

// Supported reports whether the file extension is a raster format we decode
func Supported(path string) bool {
	return supportedExt[strings.ToLower(filepath.Ext(path))]
}

// ConvertFile decodes the image at path and converts it
func ConvertFile(path string, opts Options) (string, error) {
	if !Supported(path) {
		return "", fmt.Errorf("unsupported image type %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	art, err := ConvertBytes(data, opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return art, nil
}

// ConvertBytes decodes an encoded image and converts it
func ConvertBytes(data []byte, opts Options) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return Convert(img, opts), nil
}

// Convert renders img as rows of Ramp characters. The image is converted to
// grayscale and resized to the target width with the aspect ratio kept.
func Convert(img image.Image, opts Options) string {
	gray := Grayscale(img, opts.width())
	b := gray.Bounds()
	if b.Empty() {
		return ""
	}

	values := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			values = append(values, float64(gray.GrayAt(x, y).Y))
		}
	}
	if opts.Normalize {
		values = stretch(values)
	}

	var sb strings.Builder
	sb.Grow(len(values) + b.Dy())
	w := b.Dx()
	for i, v := range values {
		if i > 0 && i%w == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte(Ramp[charIndex(v)])
	}
	return sb.String()
}

// Grayscale resizes img to width columns and converts it to 8-bit gray.
func Grayscale(img image.Image, width int) *image.Gray {
	src := img.Bounds()
	if src.Empty() || width <= 0 {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}
	height := (src.Dy()*width + src.Dx()/2) / src.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// charIndex maps a 0..255 brightness to a Ramp position
func charIndex(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return int(v / 255 * float64(len(Ramp)-1))
}

func stretch(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	lo := stat.Quantile(0.02, stat.Empirical, sorted, nil)
	hi := stat.Quantile(0.98, stat.Empirical, sorted, nil)
	if hi-lo < 1 {
		return values
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo) * 255
	}
	return out
}
