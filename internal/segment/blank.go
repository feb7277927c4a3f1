package segment

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/stat"
)

// maxSamples bounds the number of pixels inspected per region.
const maxSamples = 40000

// Luminance returns the mean and standard deviation of the 8-bit luminance
// of img, sampled on a regular grid.
func Luminance(img image.Image) (mean, stdDev float64) {
	b := img.Bounds()
	if b.Empty() {
		return 0, 0
	}

	step := 1
	for (b.Dx()/step)*(b.Dy()/step) > maxSamples {
		step++
	}

	samples := make([]float64, 0, (b.Dx()/step+1)*(b.Dy()/step+1))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			samples = append(samples, float64(g.Y))
		}
	}
	if len(samples) < 2 {
		return samples[0], 0
	}
	return stat.MeanStdDev(samples, nil)
}

// IsBlank reports whether a region is visually empty: its luminance varies
// less than minStdDev. Printed text on a light background varies a lot more
// than scanner noise does.
func IsBlank(img image.Image, minStdDev float64) bool {
	if img.Bounds().Empty() {
		return true
	}
	_, sd := Luminance(img)
	return sd < minStdDev
}
