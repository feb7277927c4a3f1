package ocr

import (
	"image"

	"gocv.io/x/gocv"
)

// preprocessForOCR prepares a region for OCR: upscale small crops, convert to
// grayscale, optionally equalize contrast, then binarize with Otsu so that the
// result is dark text on a light background.
func preprocessForOCR(region gocv.Mat, params Params) gocv.Mat {
	h, w := region.Rows(), region.Cols()

	// Upscale small images for better OCR
	var scaled gocv.Mat
	minDim := min(h, w)
	if params.MinScaleDim > 0 && minDim > 0 && minDim < params.MinScaleDim {
		scale := float64(params.MinScaleDim) / float64(minDim)
		scaled = gocv.NewMat()
		gocv.Resize(region, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		scaled = region.Clone()
	}

	gray := scaled
	if scaled.Channels() > 1 {
		gray = gocv.NewMat()
		gocv.CvtColor(scaled, &gray, gocv.ColorBGRToGray)
		scaled.Close()
	}

	if params.CLAHEClipLimit > 0 {
		clahe := gocv.NewCLAHEWithParams(params.CLAHEClipLimit, image.Point{X: 8, Y: 8})
		defer clahe.Close()

		enhanced := gocv.NewMat()
		clahe.Apply(gray, &enhanced)
		gray.Close()
		gray = enhanced
	}

	// Otsu's threshold for clean text/background separation
	binary := gocv.NewMat()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	gray.Close()

	// Tesseract expects dark text on a light background. A mostly dark
	// result means light text on a dark band (e.g. a price flash), so invert.
	whiteCount := gocv.CountNonZero(binary)
	totalPixels := binary.Rows() * binary.Cols()
	if totalPixels > 0 && float64(whiteCount)/float64(totalPixels) < 0.5 {
		gocv.BitwiseNot(binary, &binary)
	}

	return binary
}
