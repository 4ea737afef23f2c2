package ibl

import (
	"encoding/binary"
	"fmt"
	"io"

	"ibldiffuse/libio"

	"github.com/pierrec/lz4/v4"
)

type EncodeContext struct {
	Compression IblEnvCompression
	Writer      io.Writer
}

type EncodeOption func(ctx *EncodeContext) error

// OptCompress enables lz4 compression. Levels go from 0 (fast) to 9, negative levels disable compression.
func OptCompress(level int) EncodeOption {
	levels := []lz4.CompressionLevel{lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9}
	if level < 0 {
		return nil
	}

	if level >= len(levels) {
		level = len(levels) - 1
	}

	return func(ctx *EncodeContext) error {
		if ctx.Compression != IblEnvCompressionNone {
			return fmt.Errorf("compression already configured")
		}
		lzw := lz4.NewWriter(ctx.Writer)
		if err := lzw.Apply(lz4.CompressionLevelOption(levels[level])); err != nil {
			return err
		}
		if level == 0 {
			ctx.Compression = IblEnvCompressionLZ4Fast
		} else {
			ctx.Compression = IblEnvCompressionLZ4
		}
		ctx.Writer = lzw
		return nil
	}
}

// EncodeIblEnv writes a validated cube map as an iblenv stream.
func EncodeIblEnv(w io.Writer, env *CubeMap, options ...EncodeOption) (err error) {
	if err := env.Validate(); err != nil {
		return err
	}

	bw := &libio.BinaryWriter{
		Dst:   w,
		Order: binary.LittleEndian,
	}

	ctx := EncodeContext{
		Writer: bw,
	}

	for _, opt := range options {
		if opt != nil {
			err = opt(&ctx)
			if err != nil {
				return err
			}
		}
	}

	header := IblEnvHeader{
		Check:       MagicNumberIBLENV,
		Version:     IblEnvVersion1_001_000,
		Compression: ctx.Compression,
		Size:        uint32(env.Size()),
	}
	if !bw.WriteRef(&header) {
		return fmt.Errorf("could not write ibl env header: %w", bw.Err)
	}

	for i, face := range env.Faces {
		if err := EncodeRgbe(ctx.Writer, face.Pix); err != nil {
			return fmt.Errorf("could not write ibl env face %d: %w", i, err)
		}
	}

	// flush the compressor, never the caller's writer
	if closer, ok := (ctx.Writer).(io.WriteCloser); ok && ctx.Compression != IblEnvCompressionNone {
		return closer.Close()
	}

	return nil
}

// EncodeRgbe writes rgb triples as rgbe in chunks of 4096 pixels.
func EncodeRgbe(w io.Writer, data []float32) error {
	// 4096 pixels, 16 kib encoded
	rsize := 4096 * 3
	buf := make([]byte, 4096*4)

	if len(data)%3 != 0 {
		return fmt.Errorf("source not a multiple of 3 floats")
	}

	for i := 0; i < len(data); i += rsize {
		j := min(i+rsize, len(data))
		n := encodeRgbeChunk(data[i:j], buf)

		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
	return nil
}
