package sobel

import "fmt"

// KernelSize selects the Sobel kernel pair used by a Detector.
type KernelSize int

const (
	// Kernel3 is the classic 3x3 Sobel operator.
	Kernel3 KernelSize = 3

	// Kernel5 is the 5x5 extension with wider support.
	Kernel5 KernelSize = 5

	// DefaultKernelSize is used when a zero KernelSize is supplied.
	DefaultKernelSize = Kernel3
)

// The kernels are fixed-size arrays indexed [row][column]. Detectors take
// row-major copies, so nothing can write through to these values.
var (
	kernel3X = [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernel3Y = [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	kernel5X = [5][5]int{
		{-1, -2, 0, 2, 1},
		{-4, -8, 0, 8, 4},
		{-6, -12, 0, 12, 6},
		{-4, -8, 0, 8, 4},
		{-1, -2, 0, 2, 1},
	}

	kernel5Y = [5][5]int{
		{-1, -4, -6, -4, -1},
		{-2, -8, -12, -8, -2},
		{0, 0, 0, 0, 0},
		{2, 8, 12, 8, 2},
		{1, 4, 6, 4, 1},
	}
)

// ParseKernelSize validates an integer kernel size. Zero selects DefaultKernelSize.
func ParseKernelSize(n int) (KernelSize, error) {
	switch KernelSize(n) {
	case 0:
		return DefaultKernelSize, nil
	case Kernel3, Kernel5:
		return KernelSize(n), nil
	default:
		return 0, fmt.Errorf("%w: %d (want 3 or 5)", ErrUnsupportedKernelSize, n)
	}
}

// radius is the number of neighbors sampled on each side of the center pixel.
func (k KernelSize) radius() int {
	return int(k) / 2
}

// kernels returns row-major copies of the horizontal and vertical kernels
// for k. Weight (row, col) is at index row*int(k)+col.
func (k KernelSize) kernels() (kx, ky []int) {
	if k == Kernel5 {
		for row := range kernel5X {
			kx = append(kx, kernel5X[row][:]...)
			ky = append(ky, kernel5Y[row][:]...)
		}
		return kx, ky
	}
	for row := range kernel3X {
		kx = append(kx, kernel3X[row][:]...)
		ky = append(ky, kernel3Y[row][:]...)
	}
	return kx, ky
}
