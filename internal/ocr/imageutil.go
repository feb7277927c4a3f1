package ocr

import (
	"fmt"
	"image"
	"image/draw"

	"gocv.io/x/gocv"
)

// toMat converts a Go image into an OpenCV matrix. Grayscale images stay
// single channel; everything else becomes 8-bit, 3 channel BGR.
func toMat(img image.Image) (gocv.Mat, error) {
	switch src := img.(type) {
	case *image.Gray:
		// ImageGrayToMatGray assumes the pixel buffer starts at the image origin.
		if src.Rect.Min != (image.Point{}) {
			src = rebaseGray(src)
		}
		mat, err := gocv.ImageGrayToMatGray(src)
		if err != nil {
			return gocv.Mat{}, fmt.Errorf("failed to convert gray image: %w", err)
		}
		return mat, nil
	default:
		mat, err := gocv.ImageToMatRGB(img)
		if err != nil {
			return gocv.Mat{}, fmt.Errorf("failed to convert image: %w", err)
		}
		return mat, nil
	}
}

// rebaseGray copies a (sub-)image into a fresh buffer with a zero origin.
func rebaseGray(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
