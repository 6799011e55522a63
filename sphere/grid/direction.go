package grid

import "math"

// Direction is a point on the unit sphere in radians.
type Direction struct {
	Colatitude float64
	Azimuth    float64
}

// FromCartesian returns the direction of (x, y, z). The zero vector maps to
// the north pole.
func FromCartesian(x, y, z float64) Direction {
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return Direction{}
	}
	c := z / r
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return Direction{Colatitude: math.Acos(c), Azimuth: WrapAzimuth(math.Atan2(y, x))}
}

// FromElevation converts elevation/azimuth (elevation 0 on the horizon,
// +π/2 at the north pole) into a Direction.
func FromElevation(elevation, azimuth float64) Direction {
	return Direction{Colatitude: math.Pi/2 - elevation, Azimuth: WrapAzimuth(azimuth)}
}

// FromDegrees builds a Direction from colatitude and azimuth in degrees.
func FromDegrees(colatitude, azimuth float64) Direction {
	const rad = math.Pi / 180
	return Direction{Colatitude: colatitude * rad, Azimuth: WrapAzimuth(azimuth * rad)}
}

// Cartesian returns the unit vector of d.
func (d Direction) Cartesian() (x, y, z float64) {
	st, ct := math.Sincos(d.Colatitude)
	sp, cp := math.Sincos(d.Azimuth)
	return st * cp, st * sp, ct
}

// Elevation returns π/2 - colatitude.
func (d Direction) Elevation() float64 {
	return math.Pi/2 - d.Colatitude
}

// AngularDistance returns the great-circle angle between a and b.
func AngularDistance(a, b Direction) float64 {
	ax, ay, az := a.Cartesian()
	bx, by, bz := b.Cartesian()
	cx := ay*bz - az*by
	cy := az*bx - ax*bz
	cz := ax*by - ay*bx
	return math.Atan2(math.Sqrt(cx*cx+cy*cy+cz*cz), ax*bx+ay*by+az*bz)
}

// WrapAzimuth maps phi into [0, 2π).
func WrapAzimuth(phi float64) float64 {
	const twoPi = 2 * math.Pi
	phi = math.Mod(phi, twoPi)
	if phi < 0 {
		phi += twoPi
	}
	if phi >= twoPi {
		phi = 0
	}
	return phi
}
