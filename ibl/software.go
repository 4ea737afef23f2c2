package ibl

import (
	"ibldiffuse/libio"

	"github.com/go-gl/mathgl/mgl32"
)

// Integrator evaluates the diffuse irradiance of a source cube map by summing
// over every source texel. Texel directions and solid angles are computed once.
// It only reads the source and is safe for concurrent use.
type Integrator struct {
	src  *CubeMap
	size int
	// per texel of all faces, in face then row order
	dirs []mgl32.Vec3
	// per texel of a single face, the same for every face
	solidAngles []float32
}

// NewIntegrator expects a validated cube map.
func NewIntegrator(src *CubeMap) *Integrator {
	size := src.Size()
	in := &Integrator{
		src:         src,
		size:        size,
		dirs:        make([]mgl32.Vec3, 6*size*size),
		solidAngles: make([]float32, size*size),
	}

	for y := 0; y < size; y++ {
		v := TexelCenter(y, size)
		for x := 0; x < size; x++ {
			u := TexelCenter(x, size)
			in.solidAngles[y*size+x] = TexelSolidAngle(u*2.0-1.0, v*2.0-1.0, size)
		}
	}

	i := 0
	for face := range src.Faces {
		b := FaceBasis(CubeMapFace(face))
		for y := 0; y < size; y++ {
			v := TexelCenter(y, size)
			for x := 0; x < size; x++ {
				in.dirs[i] = b.direction(TexelCenter(x, size), v)
				i++
			}
		}
	}

	return in
}

// Irradiance returns the cosine weighted average of the source over the hemisphere around normal.
// Texels are weighted by their solid angle. The result is black if no texel lies in the hemisphere.
func (in *Integrator) Irradiance(normal mgl32.Vec3) mgl32.Vec3 {
	if normal.Len() == 0 {
		return mgl32.Vec3{}
	}
	normal = normal.Normalize()

	var irradiance mgl32.Vec3
	var totalWeight float32
	texels := in.size * in.size
	for face, img := range in.src.Faces {
		dirs := in.dirs[face*texels : (face+1)*texels]
		for t, dir := range dirs {
			cosTheta := normal.Dot(dir)
			if cosTheta <= 0 {
				continue
			}

			weight := in.solidAngles[t] * cosTheta
			irradiance[0] += img.Pix[t*3+0] * weight
			irradiance[1] += img.Pix[t*3+1] * weight
			irradiance[2] += img.Pix[t*3+2] * weight
			totalWeight += weight
		}
	}

	if totalWeight <= 0 {
		return mgl32.Vec3{}
	}
	return irradiance.Mul(1.0 / totalWeight)
}

// IrradianceForNormal evaluates a single normal. Use an Integrator for repeated evaluations.
func IrradianceForNormal(src *CubeMap, normal mgl32.Vec3) mgl32.Vec3 {
	return NewIntegrator(src).Irradiance(normal)
}

// convolveRow fills one row of dst. It writes nothing outside of that row.
func (in *Integrator) convolveRow(dst *CubeMap, row int) {
	face, y := rowAddress(dst, row)
	img := dst.Faces[face]
	b := FaceBasis(face)

	pix := img.Row(y)
	v := TexelCenter(y, img.Height)
	for x := 0; x < img.Width; x++ {
		normal := b.direction(TexelCenter(x, img.Width), v)
		c := in.Irradiance(normal)
		pix[x*3+0] = libio.Clamp01(c[0])
		pix[x*3+1] = libio.Clamp01(c[1])
		pix[x*3+2] = libio.Clamp01(c[2])
	}
}
