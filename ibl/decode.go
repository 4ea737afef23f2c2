package ibl

import (
	"encoding/binary"
	"fmt"
	"io"

	"ibldiffuse/libio"

	"github.com/pierrec/lz4/v4"
)

// DecodeIblEnv reads an iblenv stream. Face data is only allocated as it arrives,
// so a truncated stream with a large header size fails without a large allocation.
func DecodeIblEnv(r io.Reader) (env *CubeMap, err error) {
	br := &libio.BinaryReader{
		Src:   r,
		Order: binary.LittleEndian,
	}

	header := IblEnvHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected environment header: %w", br.Err)
	}

	if header.Check != MagicNumberIBLENV {
		return nil, fmt.Errorf("environment header is corrupt")
	}

	if header.Version != IblEnvVersion1_001_000 {
		return nil, fmt.Errorf("environment version %d unsupported", header.Version)
	}

	var pixr io.Reader = br
	if header.Compression == IblEnvCompressionLZ4 || header.Compression == IblEnvCompressionLZ4Fast {
		pixr = lz4.NewReader(br)
	} else if header.Compression != IblEnvCompressionNone {
		return nil, fmt.Errorf("environment compression id %d unsupported", header.Compression)
	}

	if header.Size == 0 {
		return nil, fmt.Errorf("environment: %w", ErrEmptyFace)
	}
	if header.Size > MaxIblEnvSize {
		return nil, fmt.Errorf("environment size %d exceeds %d: %w", header.Size, MaxIblEnvSize, ErrSizeLimit)
	}

	size := int(header.Size)
	texels := int64(size) * int64(size)
	env = &CubeMap{}
	for i := range env.Faces {
		pix, err := DecodeRgbe(io.LimitReader(pixr, texels*4))
		if err == nil && int64(len(pix)) != texels*3 {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, fmt.Errorf("expected %d encoded pixels for face %d; byte 0x%08x: %w", texels, i, br.Index, err)
		}
		env.Faces[i] = libio.NewFloatImage(pix, 3, size, size)
	}

	return env, nil
}

// DecodeRgbe reads rgbe pixels until EOF and returns them as rgb triples.
func DecodeRgbe(r io.Reader) ([]float32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data)%4 != 0 {
		return nil, fmt.Errorf("source not a multiple of 4 bytes")
	}

	result := make([]float32, len(data)/4*3)
	n := decodeRgbeChunk(data, result)

	return result[:n], nil
}
