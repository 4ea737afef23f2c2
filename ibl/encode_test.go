package ibl_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"

	"ibldiffuse/ibl"

	"github.com/chewxy/math32"
)

func TestRgbeChunkRoundTrip(t *testing.T) {
	data := randomFloats(3*1000, 0, 1)
	buf := make([]byte, 4*1000)
	if n := ibl.EncodeRgbeChunk(data, buf); n != len(buf) {
		t.Fatalf("encoded %d bytes, should be %d\n", n, len(buf))
	}

	result := make([]float32, len(data))
	if n := ibl.DecodeRgbeChunk(buf, result); n != len(result) {
		t.Fatalf("decoded %d floats, should be %d\n", n, len(result))
	}

	for i := range data {
		// the largest channel keeps 8 bits of mantissa
		if math32.Abs(data[i]-result[i]) > 1.0/128+1e-6 {
			t.Errorf("value %d should be %.5f but is %.5f\n", i, data[i], result[i])
		}
	}
}

func TestRgbeBlack(t *testing.T) {
	buf := make([]byte, 4)
	ibl.EncodeRgbeChunk([]float32{0, 0, 0}, buf)
	if !bytes.Equal(buf, []byte{0, 0, 0, 0}) {
		t.Errorf("black should encode to zero bytes but is %v\n", buf)
	}

	result := []float32{1, 1, 1}
	ibl.DecodeRgbeChunk(buf, result)
	if result[0] != 0 || result[1] != 0 || result[2] != 0 {
		t.Errorf("zero bytes should decode to black but are %v\n", result)
	}
}

func TestRgbeStream(t *testing.T) {
	// more than one chunk
	data := randomFloats(3*5000, 0, 1)
	buf := &bytes.Buffer{}
	if err := ibl.EncodeRgbe(buf, data); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 4*5000 {
		t.Fatalf("encoded %d bytes, should be %d\n", buf.Len(), 4*5000)
	}

	result, err := ibl.DecodeRgbe(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != len(data) {
		t.Fatalf("decoded %d floats, should be %d\n", len(result), len(data))
	}

	if err := ibl.EncodeRgbe(buf, data[:4]); err == nil {
		t.Errorf("encoding an incomplete triple should fail\n")
	}
}

func TestIblEnvRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		opts []ibl.EncodeOption
	}{
		{"uncompressed", nil},
		{"fast", []ibl.EncodeOption{ibl.OptCompress(0)}},
		{"compressed", []ibl.EncodeOption{ibl.OptCompress(1)}},
		{"disabled", []ibl.EncodeOption{ibl.OptCompress(-1)}},
	}

	src := randomCube(9)
	for _, c := range cases {
		buf := &bytes.Buffer{}
		if err := ibl.EncodeIblEnv(buf, src, c.opts...); err != nil {
			t.Fatalf("%s: %v\n", c.name, err)
		}

		env, err := ibl.DecodeIblEnv(buf)
		if err != nil {
			t.Fatalf("%s: %v\n", c.name, err)
		}
		if env.Size() != 9 {
			t.Fatalf("%s: decoded size should be 9 but is %d\n", c.name, env.Size())
		}
		for i := range env.Faces {
			if d := maxAbsDiff(env.Faces[i], src.Faces[i]); d > 1.0/128+1e-6 {
				t.Errorf("%s: face %d differs by %.5f\n", c.name, i, d)
			}
		}
	}
}

func TestIblEnvHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	check(ibl.EncodeIblEnv(buf, randomCube(2), ibl.OptCompress(3)))

	header := ibl.IblEnvHeader{}
	check(binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, &header))
	if header.Check != ibl.MagicNumberIBLENV || header.Version != ibl.IblEnvVersion1_001_000 {
		t.Errorf("header %+v has the wrong magic number or version\n", header)
	}
	if header.Compression != ibl.IblEnvCompressionLZ4 || header.Size != 2 {
		t.Errorf("header %+v should be lz4 compressed with size 2\n", header)
	}
}

func TestIblEnvRejectsCorruptData(t *testing.T) {
	valid := &bytes.Buffer{}
	check(ibl.EncodeIblEnv(valid, randomCube(4)))

	corrupt := func(modify func(data []byte) []byte) []byte {
		data := append([]byte(nil), valid.Bytes()...)
		return modify(data)
	}

	cases := map[string][]byte{
		"empty": {},
		"magic": corrupt(func(data []byte) []byte {
			data[0] ^= 0xff
			return data
		}),
		"version": corrupt(func(data []byte) []byte {
			binary.LittleEndian.PutUint32(data[4:], 2)
			return data
		}),
		"compression": corrupt(func(data []byte) []byte {
			binary.LittleEndian.PutUint32(data[8:], 99)
			return data
		}),
		"size": corrupt(func(data []byte) []byte {
			binary.LittleEndian.PutUint32(data[12:], 0)
			return data
		}),
		"truncated": corrupt(func(data []byte) []byte {
			return data[:len(data)-4]
		}),
	}

	for name, data := range cases {
		if env, err := ibl.DecodeIblEnv(bytes.NewReader(data)); err == nil || env != nil {
			t.Errorf("%s: decoding should fail\n", name)
		}
	}
}

func TestIblEnvRejectsInvalidCubeMap(t *testing.T) {
	cube := randomCube(4)
	cube.Faces[1] = nil
	if err := ibl.EncodeIblEnv(&bytes.Buffer{}, cube); err == nil {
		t.Errorf("encoding a cube map with a missing face should fail\n")
	}
}

func iblEnvHeaderOnly(size uint32, compression ibl.IblEnvCompression) []byte {
	buf := &bytes.Buffer{}
	check(binary.Write(buf, binary.LittleEndian, &ibl.IblEnvHeader{
		Check:       ibl.MagicNumberIBLENV,
		Version:     ibl.IblEnvVersion1_001_000,
		Compression: compression,
		Size:        size,
	}))
	return buf.Bytes()
}

func TestIblEnvRejectsOversizedHeader(t *testing.T) {
	for _, size := range []uint32{0xffffffff, 0x80000000, 50000, ibl.MaxIblEnvSize + 1} {
		env, err := ibl.DecodeIblEnv(bytes.NewReader(iblEnvHeaderOnly(size, ibl.IblEnvCompressionNone)))
		if !errors.Is(err, ibl.ErrSizeLimit) || env != nil {
			t.Errorf("size %d should fail with %v but got %v\n", size, ibl.ErrSizeLimit, err)
		}
	}

	// the largest accepted size must fail on the missing payload, not allocate it up front
	for _, compression := range []ibl.IblEnvCompression{ibl.IblEnvCompressionNone, ibl.IblEnvCompressionLZ4} {
		env, err := ibl.DecodeIblEnv(bytes.NewReader(iblEnvHeaderOnly(ibl.MaxIblEnvSize, compression)))
		if err == nil || env != nil {
			t.Errorf("compression %d: a header without payload should fail\n", compression)
		}
	}
}

func TestIblEnvTruncatedOffset(t *testing.T) {
	valid := &bytes.Buffer{}
	check(ibl.EncodeIblEnv(valid, randomCube(4)))

	// header and exactly one face
	data := valid.Bytes()[:16+4*4*4]
	_, err := ibl.DecodeIblEnv(bytes.NewReader(data))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("a truncated stream should fail with %v but got %v\n", io.ErrUnexpectedEOF, err)
	}
	if !strings.Contains(err.Error(), "face 1") || !strings.Contains(err.Error(), "byte 0x00000050") {
		t.Errorf("error should name face 1 at byte 0x50 but is %q\n", err)
	}
}
