package sobel

import "errors"

var (
	// ErrSizeMismatch is returned when a buffer's length disagrees with its
	// dimensions, or the dimensions are negative.
	ErrSizeMismatch = errors.New("pixel buffer size mismatch")

	// ErrUnsupportedKernelSize is returned for kernel sizes other than 3 and 5.
	ErrUnsupportedKernelSize = errors.New("unsupported kernel size")

	// ErrUnsupportedEnvironment is returned by a Builder that cannot construct
	// its target image type.
	ErrUnsupportedEnvironment = errors.New("unsupported output environment")
)
