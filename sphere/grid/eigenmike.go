package grid

// Eigenmike32Radius is the em32 sphere radius in meters.
const Eigenmike32Radius = 0.042

// em32 capsule positions in degrees (colatitude, azimuth).
var em32 = [32][2]float64{
	{69, 0}, {90, 32}, {111, 0}, {90, 328}, {32, 0}, {55, 45}, {90, 69}, {125, 45},
	{148, 0}, {125, 315}, {90, 291}, {55, 315}, {21, 91}, {58, 90}, {121, 90}, {159, 89},
	{69, 180}, {90, 212}, {111, 180}, {90, 148}, {32, 180}, {55, 225}, {90, 249}, {125, 225},
	{148, 180}, {125, 135}, {90, 111}, {55, 135}, {21, 269}, {58, 270}, {122, 270}, {159, 271},
}

// Eigenmike32 returns the capsule layout of the 32-channel em32 array on a
// rigid sphere of radius Eigenmike32Radius. The layout has no exact
// quadrature; transforms use least squares (well posed up to order 4).
func Eigenmike32(opts ...Option) (*Grid, error) {
	pts := make([]Direction, len(em32))
	for i, p := range em32 {
		pts[i] = FromDegrees(p[0], p[1])
	}
	return New(pts, nil, append([]Option{WithRadius(Eigenmike32Radius)}, opts...)...)
}
