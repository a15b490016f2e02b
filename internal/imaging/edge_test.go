package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/sobel-edge-mcp/internal/sobel"
)

func TestSobelEdges_Defaults(t *testing.T) {
	img := stepImage(20, 20, 0, 255)

	result, err := SobelEdges(img, SobelOptions{})
	if err != nil {
		t.Fatalf("SobelEdges failed: %v", err)
	}

	if result.Width != 20 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 20x20", result.Width, result.Height)
	}
	if result.KernelSize != 3 {
		t.Errorf("KernelSize: got %d, want 3", result.KernelSize)
	}
	if result.Format != "magnitude" {
		t.Errorf("Format: got %s, want magnitude", result.Format)
	}
	if result.Scale != 1 {
		t.Errorf("Scale: got %v, want 1", result.Scale)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if result.SavedPath != "" {
		t.Errorf("SavedPath: got %q, want empty", result.SavedPath)
	}

	edges := decodeResult(t, result)
	tests := []struct {
		x, y int
		want uint32
	}{
		{5, 10, 0},    // inside black half
		{9, 10, 255},  // left of the step
		{10, 10, 255}, // right of the step
		{15, 10, 0},   // inside white half
	}
	for _, tt := range tests {
		if got := red(edges, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}

	if result.Stats.Max != 255 || result.Stats.Min != 0 {
		t.Errorf("Stats range: got %d-%d, want 0-255", result.Stats.Min, result.Stats.Max)
	}
	if result.Stats.EdgeThreshold != DefaultEdgeThreshold {
		t.Errorf("EdgeThreshold: got %d, want %d", result.Stats.EdgeThreshold, DefaultEdgeThreshold)
	}
	if result.Stats.EdgeFraction <= 0 || result.Stats.EdgeFraction >= 1 {
		t.Errorf("EdgeFraction: got %v, want between 0 and 1", result.Stats.EdgeFraction)
	}
}

func TestSobelEdges_UniformBlack(t *testing.T) {
	result, err := SobelEdges(solidImage(16, 16, color.Black), SobelOptions{KernelSize: 5})
	if err != nil {
		t.Fatalf("SobelEdges failed: %v", err)
	}

	want := EdgeStats{EdgeThreshold: DefaultEdgeThreshold}
	if result.Stats != want {
		t.Errorf("Stats: got %+v, want %+v", result.Stats, want)
	}
}

func TestSobelEdges_Scale(t *testing.T) {
	img := stepImage(20, 20, 0, 10)

	plain, err := SobelEdges(img, SobelOptions{})
	if err != nil {
		t.Fatalf("SobelEdges failed: %v", err)
	}
	scaled, err := SobelEdges(img, SobelOptions{Scale: 2})
	if err != nil {
		t.Fatalf("SobelEdges failed: %v", err)
	}

	if got := red(decodeResult(t, plain), 9, 10); got != 40 {
		t.Errorf("unscaled step: got %d, want 40", got)
	}
	if got := red(decodeResult(t, scaled), 9, 10); got != 80 {
		t.Errorf("scaled step: got %d, want 80", got)
	}
	if scaled.Scale != 2 {
		t.Errorf("Scale: got %v, want 2", scaled.Scale)
	}
}

func TestSobelEdges_BlurSoftensStep(t *testing.T) {
	img := stepImage(30, 30, 0, 10)

	result, err := SobelEdges(img, SobelOptions{BlurRadius: 2})
	if err != nil {
		t.Fatalf("SobelEdges failed: %v", err)
	}

	got := red(decodeResult(t, result), 14, 15)
	if got == 0 || got >= 40 {
		t.Errorf("blurred step: got %d, want between 0 and 40", got)
	}
}

func TestSobelEdges_AlphaDoesNotCreateEdges(t *testing.T) {
	// White everywhere, half of it at 50% opacity. Grayscale ignores alpha,
	// so only the zero-padded image border shows edges.
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			a := uint8(255)
			if x < 10 {
				a = 128
			}
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, a})
		}
	}

	for _, radius := range []float64{0, 1} {
		result, err := SobelEdges(img, SobelOptions{BlurRadius: radius})
		if err != nil {
			t.Fatalf("radius %v: SobelEdges failed: %v", radius, err)
		}
		edges := decodeResult(t, result)
		for x := 1; x < 19; x++ {
			if got := red(edges, x, 5); got != 0 {
				t.Errorf("radius %v: pixel (%d,5): got %d, want 0", radius, x, got)
			}
		}
	}
}

func TestSobelEdges_Region(t *testing.T) {
	img := solidImage(40, 40, color.White)

	result, err := SobelEdges(img, SobelOptions{
		Region: &Region{X1: 10, Y1: 10, X2: 20, Y2: 16},
		Format: "y",
	})
	if err != nil {
		t.Fatalf("SobelEdges failed: %v", err)
	}
	if result.Width != 10 || result.Height != 6 {
		t.Fatalf("dimensions: got %dx%d, want 10x6", result.Width, result.Height)
	}

	// Zero padding applies at the region border, not the image border.
	edges := decodeResult(t, result)
	if got := red(edges, 5, 0); got != 255 {
		t.Errorf("region top row: got %d, want 255", got)
	}
	if got := red(edges, 5, 3); got != 0 {
		t.Errorf("region interior: got %d, want 0", got)
	}
}

func TestSobelEdges_OutputKinds(t *testing.T) {
	img := stepImage(12, 12, 0, 255)

	for _, kind := range []string{OutputRGBA, OutputNRGBA, OutputGray} {
		t.Run(kind, func(t *testing.T) {
			result, err := SobelEdges(img, SobelOptions{OutputKind: kind})
			if err != nil {
				t.Fatalf("SobelEdges failed: %v", err)
			}
			edges := decodeResult(t, result)
			if got := red(edges, 5, 6); got != 255 {
				t.Errorf("step pixel: got %d, want 255", got)
			}
			if kind == OutputGray {
				if _, ok := edges.(*image.Gray); !ok {
					t.Errorf("decoded type: got %T, want *image.Gray", edges)
				}
			}
		})
	}
}

func TestSobelEdges_HueColormap(t *testing.T) {
	result, err := SobelEdges(stepImage(12, 12, 0, 255), SobelOptions{
		Format:   "direction",
		Colormap: ColormapHue,
	})
	if err != nil {
		t.Fatalf("SobelEdges failed: %v", err)
	}

	// A flat pixel has direction 128, roughly cyan on the hue wheel.
	r, g, b, _ := decodeResult(t, result).At(3, 6).RGBA()
	if r>>8 > 5 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("flat pixel: got (%d,%d,%d), want cyan", r>>8, g>>8, b>>8)
	}
}

func TestSobelEdges_SaveToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "edges.png")

	result, err := SobelEdges(stepImage(16, 8, 0, 255), SobelOptions{OutputPath: out})
	if err != nil {
		t.Fatalf("SobelEdges failed: %v", err)
	}
	if result.SavedPath != out {
		t.Errorf("SavedPath: got %q, want %q", result.SavedPath, out)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	defer f.Close()

	saved, err := png.Decode(f)
	if err != nil {
		t.Fatalf("saved file is not a PNG: %v", err)
	}
	if b := saved.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("saved dimensions: got %dx%d, want 16x8", b.Dx(), b.Dy())
	}
}

func TestSobelEdges_ZeroEdgeThreshold(t *testing.T) {
	img := solidImage(10, 10, color.Black)

	result, err := SobelEdges(img, SobelOptions{EdgeThreshold: intPtr(0)})
	if err != nil {
		t.Fatalf("SobelEdges failed: %v", err)
	}
	if result.Stats.EdgeThreshold != 0 {
		t.Errorf("EdgeThreshold: got %d, want 0", result.Stats.EdgeThreshold)
	}
	// Every pixel is >= 0, so all of them count as edges.
	if result.Stats.EdgeFraction != 1 {
		t.Errorf("EdgeFraction: got %v, want 1", result.Stats.EdgeFraction)
	}
}

func TestSobelEdges_Errors(t *testing.T) {
	img := solidImage(10, 10, color.White)

	tests := []struct {
		name    string
		opts    SobelOptions
		wantErr error
	}{
		{"kernel size", SobelOptions{KernelSize: 7}, sobel.ErrUnsupportedKernelSize},
		{"output kind", SobelOptions{OutputKind: "yuv"}, sobel.ErrUnsupportedEnvironment},
		{"colormap", SobelOptions{Colormap: "plasma"}, nil},
		{"region outside", SobelOptions{Region: &Region{X1: 5, Y1: 5, X2: 20, Y2: 8}}, nil},
		{"region inverted", SobelOptions{Region: &Region{X1: 5, Y1: 5, X2: 2, Y2: 8}}, nil},
		{"output path", SobelOptions{OutputPath: filepath.Join(t.TempDir(), "edges.jpg")}, nil},
		{"threshold negative", SobelOptions{EdgeThreshold: intPtr(-1)}, nil},
		{"threshold too large", SobelOptions{EdgeThreshold: intPtr(256)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SobelEdges(img, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportImage(t *testing.T) {
	dir := t.TempDir()
	img := stepImage(20, 10, 0, 255)

	result, err := ExportImage(img, &Region{X1: 5, Y1: 0, X2: 15, Y2: 10}, filepath.Join(dir, "crop.png"))
	if err != nil {
		t.Fatalf("ExportImage failed: %v", err)
	}
	if result.Width != 10 || result.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 10x10", result.Width, result.Height)
	}
	if result.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}

	if _, err := ExportImage(img, nil, filepath.Join(dir, "full.bmp")); err == nil {
		t.Error("ExportImage should reject non-PNG paths")
	}
	if _, err := ExportImage(img, &Region{X1: 0, Y1: 0, X2: 50, Y2: 5}, filepath.Join(dir, "bad.png")); err == nil {
		t.Error("ExportImage should reject regions outside the image")
	}
}

func TestComputeStats(t *testing.T) {
	data := []uint8{
		0, 0, 0, 255,
		100, 100, 100, 255,
		50, 50, 50, 255,
		10, 10, 10, 255,
	}

	got := computeStats(data, 50)
	want := EdgeStats{Min: 0, Max: 100, Mean: 40, EdgeThreshold: 50, EdgeFraction: 0.5}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if empty := computeStats(nil, 50); empty != (EdgeStats{EdgeThreshold: 50}) {
		t.Errorf("empty: got %+v", empty)
	}
}

// Helper functions

// stepImage returns an image whose left half has gray level lo and right
// half gray level hi.
func stepImage(width, height int, lo, hi uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := lo
			if x >= width/2 {
				v = hi
			}
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func decodeResult(t *testing.T, result *SobelResult) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func red(img image.Image, x, y int) uint32 {
	r, _, _, _ := img.At(x, y).RGBA()
	return r >> 8
}

func intPtr(n int) *int {
	return &n
}
