// Package sobel implements Sobel gradient edge detection over raw RGBA pixel buffers.
//
// A Detector is built once from a PixelBuffer. Construction converts the input to
// grayscale, averaging R, G and B of each pixel and forcing alpha to 255. Every
// later Apply call reads only that grayscale copy, so calls are independent,
// deterministic and safe to run concurrently on the same Detector.
//
// # Pixel Layout
//
// Buffers are row-major with 4 bytes per pixel (R, G, B, A). Pixel (x, y) starts
// at offset (y*width + x)*4. A buffer whose length is not width*height*4 is
// rejected with ErrSizeMismatch.
//
// # Kernels
//
// Two kernel sizes are supported: the classic 3x3 Sobel pair and its 5x5
// extension. Samples falling outside the image are treated as 0 (zero padding);
// no reflection or edge clamping is applied.
//
// # Output Formats
//
//   - FormatMagnitude: sqrt(gx² + gy²)
//   - FormatX: |gx|
//   - FormatY: |gy|
//   - FormatDirection: atan2(gy, gx) mapped linearly from [-π, π] onto [0, 255]
//
// Unknown formats fall back to FormatMagnitude. Every value is stored with
// clamped 8-bit semantics: NaN and negatives become 0, values above 255 become
// 255, anything else is rounded to the nearest integer (ties to even).
//
// # Output Construction
//
// Apply returns a plain *PixelBuffer. ApplyWith accepts a Builder so callers can
// receive the result in whatever image type their host works with.
package sobel
