package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/sobel-edge-mcp/internal/sobel"
)

// Output kinds accepted by OutputBuilder.
const (
	OutputRGBA  = "rgba"
	OutputNRGBA = "nrgba"
	OutputGray  = "gray"
)

// ToPixelBuffer copies img into a tightly packed, zero-origin RGBA buffer of
// straight (non-premultiplied) channel samples. Premultiplied sources such as
// *image.RGBA are divided back out by alpha, so a pixel's color does not
// depend on its opacity. Fully transparent premultiplied pixels carry no
// color and read as black.
func ToPixelBuffer(img image.Image) *sobel.PixelBuffer {
	nrgba := imaging.Clone(img)
	width, height := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	buf := sobel.NewPixelBuffer(width, height)
	rowLen := width * 4
	for y := 0; y < height; y++ {
		src := y * nrgba.Stride
		copy(buf.Data[y*rowLen:(y+1)*rowLen], nrgba.Pix[src:src+rowLen])
	}
	return buf
}

// RGBABuilder wraps detector output in an *image.RGBA without copying. Every
// output pixel is opaque, so premultiplication does not alter the values.
func RGBABuilder(data []uint8, width, height int) (image.Image, error) {
	return &image.RGBA{Pix: data, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}, nil
}

func nrgbaBuilder(data []uint8, width, height int) (image.Image, error) {
	return &image.NRGBA{Pix: data, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}, nil
}

// grayBuilder keeps only the R channel, which equals G and B in detector output.
func grayBuilder(data []uint8, width, height int) (image.Image, error) {
	gray := image.NewGray(image.Rect(0, 0, width, height))
	for i := range gray.Pix {
		gray.Pix[i] = data[i*4]
	}
	return gray, nil
}

// OutputBuilder returns the sobel.Builder for an output kind: "rgba" (the
// default when kind is empty), "nrgba" or "gray". Other kinds fail with an
// error wrapping sobel.ErrUnsupportedEnvironment.
func OutputBuilder(kind string) (sobel.Builder[image.Image], error) {
	switch kind {
	case "", OutputRGBA:
		return RGBABuilder, nil
	case OutputNRGBA:
		return nrgbaBuilder, nil
	case OutputGray:
		return grayBuilder, nil
	default:
		return nil, fmt.Errorf("%w: output kind %q", sobel.ErrUnsupportedEnvironment, kind)
	}
}

// ScaleIntensity multiplies the R, G and B channels of an RGBA buffer by
// factor in place, saturating at 255. Alpha is untouched. Factors <= 0 and
// exactly 1 leave the data unchanged.
func ScaleIntensity(data []uint8, factor float64) {
	if factor <= 0 || factor == 1 {
		return
	}
	for i := 0; i+3 < len(data); i += 4 {
		data[i] = sobel.Clamp8(math.Min(255, float64(data[i])*factor))
		data[i+1] = sobel.Clamp8(math.Min(255, float64(data[i+1])*factor))
		data[i+2] = sobel.Clamp8(math.Min(255, float64(data[i+2])*factor))
	}
}

// HueColormap renders the R channel of an RGBA buffer as a hue wheel: 0 maps
// to red at 0°, and the hue rotates through 360° as the value climbs to 255.
// This is meant for direction output, where hue shows edge orientation.
func HueColormap(data []uint8, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i+3 < len(data) && i+3 < len(out.Pix); i += 4 {
		hue := math.Mod(float64(data[i])/255*360, 360)
		r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
		out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = r, g, b, 255
	}
	return out
}
