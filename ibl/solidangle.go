package ibl

import "github.com/chewxy/math32"

// See: http://www.rorydriscoll.com/2012/01/15/cubemap-texel-solid-angle/
func areaElement(x, y float32) float32 {
	return math32.Atan2(x*y, math32.Sqrt(x*x+y*y+1.0))
}

// TexelSolidAngle returns the solid angle subtended by the texel centered at (u, v),
// given in the [-1,1] face space of a face with resolution texels per edge.
// It does not depend on the face.
func TexelSolidAngle(u, v float32, resolution int) float32 {
	invResolution := 1.0 / float32(resolution)

	x0 := u - invResolution
	y0 := v - invResolution
	x1 := u + invResolution
	y1 := v + invResolution

	return areaElement(x0, y0) - areaElement(x0, y1) - areaElement(x1, y0) + areaElement(x1, y1)
}
