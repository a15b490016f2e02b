// Package imaging connects decoded images to the Sobel edge detector.
//
// It loads and caches image files, converts between image.Image values and the
// raw RGBA buffers the detector works on, and wraps a detection run with the
// host-side steps around it: region cropping, optional Gaussian pre-blur,
// intensity scaling, colormapping, PNG encoding and saving to disk.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. For
// regions, (x1,y1) is inclusive and (x2,y2) is exclusive. A cropped region is
// processed as an image of its own, so zero padding applies at the region
// border.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. SobelEdges and ExportImage keep no
// state between calls.
//
// # Error Handling
//
// Functions return errors for:
//   - Regions outside the image bounds or with x1 >= x2 or y1 >= y2
//   - Kernel sizes other than 3 and 5 (sobel.ErrUnsupportedKernelSize)
//   - Unknown output kinds (sobel.ErrUnsupportedEnvironment)
//   - Output paths without a .png extension
//   - File I/O and encoding failures
package imaging
