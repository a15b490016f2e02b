package sobel

import (
	"fmt"
	"math"
)

// DefaultColorSpace is the tag PlainBuilder attaches to its output.
const DefaultColorSpace = "srgb"

// PixelBuffer is a row-major grid of RGBA pixels, 4 bytes per pixel.
type PixelBuffer struct {
	// Width of the grid in pixels.
	Width int `json:"width"`

	// Height of the grid in pixels.
	Height int `json:"height"`

	// Data holds Width*Height*4 channel samples in R, G, B, A order.
	Data []uint8 `json:"-"`

	// ColorSpace is an optional tag carried through for the host. The
	// algorithm never reads it.
	ColorSpace string `json:"color_space,omitempty"`
}

// NewPixelBuffer allocates a zeroed buffer of the given dimensions.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:      width,
		Height:     height,
		Data:       make([]uint8, width*height*4),
		ColorSpace: DefaultColorSpace,
	}
}

// Validate checks that the dimensions are non-negative and that Data holds
// exactly Width*Height*4 samples.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrSizeMismatch)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrSizeMismatch, b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Data) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrSizeMismatch, b.Width, b.Height, want, len(b.Data))
	}
	return nil
}

// Offset returns the index of the first channel of pixel (x, y).
func (b *PixelBuffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// Builder constructs a host image value from a finished output buffer.
//
// data is owned by the builder once called; the Detector keeps no reference.
// A builder that cannot produce its type should return an error wrapping
// ErrUnsupportedEnvironment.
type Builder[T any] func(data []uint8, width, height int) (T, error)

// PlainBuilder wraps the data in a *PixelBuffer tagged with DefaultColorSpace.
func PlainBuilder(data []uint8, width, height int) (*PixelBuffer, error) {
	return &PixelBuffer{
		Width:      width,
		Height:     height,
		Data:       data,
		ColorSpace: DefaultColorSpace,
	}, nil
}

// Clamp8 converts v to a channel value with clamped 8-bit storage semantics:
// NaN and values <= 0 become 0, values >= 255 become 255, and everything else
// rounds to the nearest integer with ties to even.
func Clamp8(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(math.RoundToEven(v))
	}
}
