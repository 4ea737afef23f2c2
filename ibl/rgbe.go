package ibl

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Shared exponent encoding of rgb triples into 4 bytes.
// See: https://www.graphics.cornell.edu/~bjw/rgbe/rgbe.c

func encodeRgbeChunk(data []float32, buf []byte) int {
	required := len(data) / 3 * 4
	if len(buf) < required {
		panic(fmt.Errorf("buffer too small, only %d of %d", len(buf), required))
	}

	n := 0
	for i := 0; i+2 < len(data); i += 3 {
		r, g, b := data[i+0], data[i+1], data[i+2]
		max := math32.Max(r, math32.Max(g, b))

		if max < 1e-32 {
			buf[n+0], buf[n+1], buf[n+2], buf[n+3] = 0, 0, 0, 0
		} else {
			frac, exp := math32.Frexp(max)
			f := frac * 256.0 / max
			buf[n+0] = byte(r * f)
			buf[n+1] = byte(g * f)
			buf[n+2] = byte(b * f)
			buf[n+3] = byte(exp + 128)
		}
		n += 4
	}
	return n
}

func decodeRgbeChunk(data []byte, buf []float32) int {
	required := len(data) / 4 * 3
	if len(buf) < required {
		panic(fmt.Errorf("buffer too small, only %d of %d", len(buf), required))
	}

	n := 0
	for i := 0; i+3 < len(data); i += 4 {
		e := data[i+3]
		if e == 0 {
			buf[n+0], buf[n+1], buf[n+2] = 0, 0, 0
		} else {
			f := math32.Ldexp(1.0, int(e)-(128+8))
			buf[n+0] = float32(data[i+0]) * f
			buf[n+1] = float32(data[i+1]) * f
			buf[n+2] = float32(data[i+2]) * f
		}
		n += 3
	}
	return n
}
