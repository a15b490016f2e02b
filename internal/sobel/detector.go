package sobel

import (
	"fmt"
	"math"
)

// Format selects how the two gradient components are combined per pixel.
type Format string

const (
	FormatMagnitude Format = "magnitude"
	FormatX         Format = "x"
	FormatY         Format = "y"
	FormatDirection Format = "direction"
)

// ParseFormat maps a format name to a Format. Unknown names, including the
// empty string, yield FormatMagnitude.
func ParseFormat(s string) Format {
	switch f := Format(s); f {
	case FormatX, FormatY, FormatDirection:
		return f
	default:
		return FormatMagnitude
	}
}

// Detector runs Sobel convolution over a grayscale copy of an input image.
//
// The grayscale buffer is computed once in New and never written again, so a
// Detector may be shared between goroutines.
type Detector struct {
	width  int
	height int
	size   KernelSize
	kx, ky []int
	gray   []uint8
}

// New builds a Detector for img using the given kernel size.
//
// Parameters:
//   - img: Source pixels. Only read during construction; the caller keeps ownership.
//   - size: Kernel3 or Kernel5. Zero selects DefaultKernelSize.
//
// Returns:
//   - *Detector: Ready for Apply.
//   - error: ErrSizeMismatch for malformed buffers, ErrUnsupportedKernelSize
//     for any other size.
func New(img *PixelBuffer, size KernelSize) (*Detector, error) {
	size, err := ParseKernelSize(int(size))
	if err != nil {
		return nil, err
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}

	kx, ky := size.kernels()
	return &Detector{
		width:  img.Width,
		height: img.Height,
		size:   size,
		kx:     kx,
		ky:     ky,
		gray:   grayscale(img.Data),
	}, nil
}

// grayscale averages R, G and B of every pixel into all three channels and
// sets alpha to 255.
func grayscale(src []uint8) []uint8 {
	gray := make([]uint8, len(src))
	for i := 0; i+3 < len(src); i += 4 {
		sum := int(src[i]) + int(src[i+1]) + int(src[i+2])
		avg := Clamp8(float64(sum) / 3)
		gray[i], gray[i+1], gray[i+2] = avg, avg, avg
		gray[i+3] = 255
	}
	return gray
}

// Width returns the image width in pixels.
func (d *Detector) Width() int { return d.width }

// Height returns the image height in pixels.
func (d *Detector) Height() int { return d.height }

// KernelSize returns the kernel size in use.
func (d *Detector) KernelSize() KernelSize { return d.size }

// Grayscale returns a copy of the grayscale buffer computed at construction.
func (d *Detector) Grayscale() *PixelBuffer {
	data := make([]uint8, len(d.gray))
	copy(data, d.gray)
	return &PixelBuffer{Width: d.width, Height: d.height, Data: data, ColorSpace: DefaultColorSpace}
}

// at returns the grayscale value at (x, y), or 0 outside the image.
func (d *Detector) at(x, y int) int {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 0
	}
	return int(d.gray[(y*d.width+x)*4])
}

// Gradient returns the raw horizontal and vertical gradient at (x, y) before
// any combination or clamping. Neighbors outside the image contribute 0.
func (d *Detector) Gradient(x, y int) (gx, gy int) {
	r := d.size.radius()
	n := int(d.size)
	for ky := -r; ky <= r; ky++ {
		for kx := -r; kx <= r; kx++ {
			v := d.at(x+kx, y+ky)
			if v == 0 {
				continue
			}
			i := (ky+r)*n + kx + r
			gx += v * d.kx[i]
			gy += v * d.ky[i]
		}
	}
	return gx, gy
}

// combine reduces a gradient pair to the scalar selected by format.
func combine(format Format, gx, gy int) float64 {
	fx, fy := float64(gx), float64(gy)
	switch format {
	case FormatX:
		return math.Abs(fx)
	case FormatY:
		return math.Abs(fy)
	case FormatDirection:
		return (math.Atan2(fy, fx) + math.Pi) / (2 * math.Pi) * 255
	default:
		return math.Sqrt(fx*fx + fy*fy)
	}
}

// Apply runs the filter and returns a new buffer of the same dimensions with
// R=G=B holding the selected value and A=255. Unknown formats are treated as
// FormatMagnitude.
func (d *Detector) Apply(format Format) *PixelBuffer {
	// PlainBuilder never fails.
	out, _ := ApplyWith(d, format, PlainBuilder)
	return out
}

// ApplyWith runs the filter and hands the finished channel data to build.
//
// The output is fully computed before build is called; if build fails its
// error is returned wrapped and no result is produced.
func ApplyWith[T any](d *Detector, format Format, build Builder[T]) (T, error) {
	format = ParseFormat(string(format))
	data := make([]uint8, d.width*d.height*4)

	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			gx, gy := d.Gradient(x, y)
			v := Clamp8(combine(format, gx, gy))
			i := (y*d.width + x) * 4
			data[i], data[i+1], data[i+2] = v, v, v
			data[i+3] = 255
		}
	}

	out, err := build(data, d.width, d.height)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to build output image: %w", err)
	}
	return out, nil
}
