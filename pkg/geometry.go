package disp

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const degToRad = math.Pi / 180.

// Direction returns the unit vector for a zenith angle and azimuth given in degrees.
func Direction(ze, az float64) r3.Vec {
	ze *= degToRad
	az *= degToRad
	return r3.Vec{
		X: math.Sin(ze) * math.Cos(az),
		Y: math.Sin(ze) * math.Sin(az),
		Z: math.Cos(ze),
	}
}

// LinePointDistance returns the perpendicular distance between point (x, y, z)
// and the line through (x1, y1, z1) pointing towards (ze, az).
// Callers pass ground coordinates as (y, -x, z).
func LinePointDistance(x1, y1, z1, ze, az, x, y, z float64) float64 {
	return lineDistance(r3.Vec{X: x1, Y: y1, Z: z1}, Direction(ze, az), r3.Vec{X: x, Y: y, Z: z})
}

func lineDistance(origin, dir, p r3.Vec) float64 {
	n := r3.Norm(dir)
	if n == 0 {
		return r3.Norm(r3.Sub(p, origin))
	}
	return r3.Norm(r3.Cross(dir, r3.Sub(p, origin))) / n
}
