package disp

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// EmissionHeightCalculator estimates the height of maximum Cherenkov
// emission from the parallax between image centroids of telescope pairs.
// Buffers are sized once from the telescope count and reused for every event.
type EmissionHeightCalculator struct {
	positions []r3.Vec
	cenX      []float64
	cenY      []float64
	size      []float64
}

func NewEmissionHeightCalculator(telescopes []*TelescopeConfig) *EmissionHeightCalculator {
	n := len(telescopes)
	e := &EmissionHeightCalculator{
		positions: make([]r3.Vec, n),
		cenX:      make([]float64, n),
		cenY:      make([]float64, n),
		size:      make([]float64, n),
	}
	for i, tel := range telescopes {
		e.positions[i] = r3.Vec{X: float64(tel.Y), Y: -float64(tel.X), Z: float64(tel.Z)}
	}
	e.Reset()
	return e
}

// Reset forgets the images of the previous event.
func (e *EmissionHeightCalculator) Reset() {
	for i := range e.size {
		e.size[i] = -1
		e.cenX[i] = 0
		e.cenY[i] = 0
	}
}

func (e *EmissionHeightCalculator) Add(ordinal int, cenX, cenY, size float32) {
	if ordinal < 0 || ordinal >= len(e.size) {
		return
	}
	e.cenX[ordinal] = float64(cenX)
	e.cenY[ordinal] = float64(cenY)
	e.size[ordinal] = float64(size)
}

// Height returns the size-weighted mean emission height above the array in
// km, or -1 when fewer than two images with a measurable parallax were added.
func (e *EmissionHeightCalculator) Height(pointingAzimuth, pointingElevation float64) float32 {
	ze := 90. - pointingElevation
	axis := Direction(ze, pointingAzimuth)
	cosZe := math.Cos(ze * degToRad)

	var sum, weights float64
	for i := range e.size {
		if e.size[i] <= 0 {
			continue
		}
		for j := i + 1; j < len(e.size); j++ {
			if e.size[j] <= 0 {
				continue
			}
			// angular distance between the two centroids [deg]
			parallax := math.Hypot(e.cenX[i]-e.cenX[j], e.cenY[i]-e.cenY[j])
			if parallax <= 0 {
				continue
			}
			baseline := lineDistance(e.positions[i], axis, e.positions[j])
			if baseline <= 0 {
				continue
			}
			height := baseline / math.Tan(parallax*degToRad) * cosZe
			weight := 1. / (1./e.size[i] + 1./e.size[j])
			sum += height * weight
			weights += weight
		}
	}
	if weights <= 0 {
		return -1
	}
	return float32(sum / weights / 1000.)
}
