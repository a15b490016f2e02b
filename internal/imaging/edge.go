package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/sobel-edge-mcp/internal/sobel"
)

// Colormaps accepted by SobelOptions.Colormap.
const (
	ColormapGray = "gray"
	ColormapHue  = "hue"
)

// DefaultEdgeThreshold is the output value at or above which a pixel counts
// as an edge in EdgeStats.
const DefaultEdgeThreshold = 50

// SobelOptions configures a SobelEdges run. The zero value runs a 3x3
// magnitude pass over the whole image with no pre-blur or scaling.
type SobelOptions struct {
	// KernelSize is 3 or 5. Zero selects 3.
	KernelSize int

	// Format is "magnitude", "x", "y" or "direction". Unknown values fall
	// back to "magnitude".
	Format string

	// Scale multiplies the output intensities, saturating at 255. Values
	// <= 0 are treated as 1.
	Scale float64

	// BlurRadius applies a Gaussian blur of this radius before detection
	// when greater than zero. The kernel spans ceil(2r+1) pixels. The blur
	// works on premultiplied color and the result is un-premultiplied again
	// before grayscale conversion.
	BlurRadius float64

	// Region limits detection to a rectangle of the source image. Pixels
	// outside the region are treated as absent, so zero padding applies at
	// the region border.
	Region *Region

	// Colormap is "gray" (default) or "hue".
	Colormap string

	// OutputKind picks the image type the result is built as: "rgba"
	// (default), "nrgba" or "gray". Ignored when Colormap is "hue".
	OutputKind string

	// OutputPath, when set, saves the result as a PNG file at this path.
	OutputPath string

	// EdgeThreshold is the value counted as an edge in EdgeStats, in the
	// range 0-255. Nil selects DefaultEdgeThreshold.
	EdgeThreshold *int
}

// EdgeStats summarizes the output intensities of a Sobel run, after scaling.
type EdgeStats struct {
	Min           uint8   `json:"min"`
	Max           uint8   `json:"max"`
	Mean          float64 `json:"mean"`
	EdgeThreshold int     `json:"edge_threshold"`
	EdgeFraction  float64 `json:"edge_fraction"`
}

// SobelResult contains a Sobel edge map encoded as base64 PNG.
type SobelResult struct {
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	KernelSize  int       `json:"kernel_size"`
	Format      string    `json:"output_format"`
	Scale       float64   `json:"scale"`
	Stats       EdgeStats `json:"stats"`
	ImageBase64 string    `json:"image_base64"`
	MimeType    string    `json:"mime_type"`
	SavedPath   string    `json:"saved_path,omitempty"`
}

// SobelEdges runs Sobel edge detection over img.
//
// Parameters:
//   - img: Source image (any color model).
//   - opts: Kernel size, output format, post-processing and output options.
//
// Returns:
//   - *SobelResult: The edge map as base64 PNG plus intensity statistics.
//   - error: Non-nil for invalid regions, kernel sizes, thresholds or output kinds, and
//     for encode or save failures.
//
// # Pipeline
//
//  1. Crop to opts.Region, if given
//  2. Gaussian pre-blur, if opts.BlurRadius > 0
//  3. Grayscale by averaging R, G and B, then convolve with the Sobel kernels
//     (zero padding at the borders)
//  4. Multiply intensities by opts.Scale
//  5. Render as grayscale or through the hue colormap
//  6. Encode as PNG, and save to opts.OutputPath if given
func SobelEdges(img image.Image, opts SobelOptions) (*SobelResult, error) {
	size, err := sobel.ParseKernelSize(opts.KernelSize)
	if err != nil {
		return nil, err
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	threshold := DefaultEdgeThreshold
	if opts.EdgeThreshold != nil {
		threshold = *opts.EdgeThreshold
	}
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("invalid edge threshold %d: must be 0-255", threshold)
	}
	if opts.Colormap == "" {
		opts.Colormap = ColormapGray
	}
	if opts.Colormap != ColormapGray && opts.Colormap != ColormapHue {
		return nil, fmt.Errorf("unknown colormap: %s", opts.Colormap)
	}
	if opts.OutputPath != "" {
		if err := checkPNGPath(opts.OutputPath); err != nil {
			return nil, err
		}
	}
	build, err := OutputBuilder(opts.OutputKind)
	if err != nil {
		return nil, err
	}

	src, err := cropRegion(img, opts.Region)
	if err != nil {
		return nil, err
	}
	if opts.BlurRadius > 0 {
		src = blur.Gaussian(src, opts.BlurRadius)
	}

	det, err := sobel.New(ToPixelBuffer(src), size)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare edge detector: %w", err)
	}

	format := sobel.ParseFormat(opts.Format)
	var stats EdgeStats
	edges, err := sobel.ApplyWith(det, format, func(data []uint8, width, height int) (image.Image, error) {
		ScaleIntensity(data, opts.Scale)
		stats = computeStats(data, threshold)
		if opts.Colormap == ColormapHue {
			return HueColormap(data, width, height), nil
		}
		return build(data, width, height)
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, edges, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode edge image: %w", err)
	}

	result := &SobelResult{
		Width:       det.Width(),
		Height:      det.Height(),
		KernelSize:  int(det.KernelSize()),
		Format:      string(format),
		Scale:       opts.Scale,
		Stats:       stats,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}

	if opts.OutputPath != "" {
		if err := imaging.Save(edges, opts.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to save edge image: %w", err)
		}
		result.SavedPath = opts.OutputPath
	}

	return result, nil
}

// computeStats summarizes the R channel of an RGBA buffer.
func computeStats(data []uint8, threshold int) EdgeStats {
	stats := EdgeStats{EdgeThreshold: threshold}
	n := len(data) / 4
	if n == 0 {
		return stats
	}

	stats.Min = 255
	var sum, edges int
	for i := 0; i < len(data); i += 4 {
		v := data[i]
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		if int(v) >= threshold {
			edges++
		}
		sum += int(v)
	}
	stats.Mean = float64(sum) / float64(n)
	stats.EdgeFraction = float64(edges) / float64(n)
	return stats
}

// ExportResult describes an image written by ExportImage.
type ExportResult struct {
	Path          string `json:"path"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// ExportImage saves img, optionally cropped to region, as a PNG file at path.
func ExportImage(img image.Image, region *Region, path string) (*ExportResult, error) {
	if err := checkPNGPath(path); err != nil {
		return nil, err
	}

	src, err := cropRegion(img, region)
	if err != nil {
		return nil, err
	}
	if err := imaging.Save(src, path); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := src.Bounds()
	return &ExportResult{
		Path:          path,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		FileSizeBytes: stat.Size(),
	}, nil
}

func checkPNGPath(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		return fmt.Errorf("output path must end in .png: %s", path)
	}
	return nil
}
