package ibl

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Basis spans a cube face. Normal points out of the face, U and V are the
// directions of increasing texel x and y.
type Basis struct {
	Normal, U, V mgl32.Vec3
}

// FaceBasis is the only place that defines the cube orientation.
// Both DirectionFromFaceUV and FaceUVFromDirection derive from it.
func FaceBasis(face CubeMapFace) Basis {
	var sign float32 = -1.0
	if face.Positive() {
		sign = 1.0
	}

	var b Basis
	b.Normal[face.Axis()] = sign
	switch face.Axis() {
	case 0:
		b.U[2] = sign
		b.V[1] = 1.0
	case 1:
		b.U[0] = 1.0
		b.V[2] = sign
	case 2:
		b.U[0] = sign
		b.V[1] = 1.0
	}
	return b
}

// DirectionFromFaceUV maps normalized (0..1) face coordinates to the unit direction they represent.
func DirectionFromFaceUV(face CubeMapFace, u, v float32) mgl32.Vec3 {
	b := FaceBasis(face)
	return b.direction(u, v)
}

func (b Basis) direction(u, v float32) mgl32.Vec3 {
	return b.Normal.
		Add(b.U.Mul(u*2.0 - 1.0)).
		Add(b.V.Mul(v*2.0 - 1.0)).
		Normalize()
}

// FaceUVFromDirection finds the face a direction points at and the normalized (0..1)
// coordinates on it. Ties between axes resolve to the lower axis.
func FaceUVFromDirection(dir mgl32.Vec3) (face CubeMapFace, u, v float32) {
	axis := 0
	for i := 1; i < 3; i++ {
		if math32.Abs(dir[i]) > math32.Abs(dir[axis]) {
			axis = i
		}
	}

	face = CubeMapFace(axis)
	if dir[axis] >= 0 {
		face += 3
	}

	major := math32.Abs(dir[axis])
	if major == 0 {
		return face, 0.5, 0.5
	}

	// project onto the cube surface, the basis axes then give the in-plane offsets
	p := dir.Mul(1.0 / major)
	b := FaceBasis(face)
	u = (p.Dot(b.U) + 1.0) * 0.5
	v = (p.Dot(b.V) + 1.0) * 0.5
	return face, u, v
}

// TexelCenter returns the normalized coordinate of the center of texel i.
func TexelCenter(i, size int) float32 {
	return (float32(i) + 0.5) / float32(size)
}
