package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ibldiffuse/ibl"
	"ibldiffuse/libio"

	"golang.org/x/sync/errgroup"
)

const (
	facePlaceholder = "{face}"
	iblEnvExt       = ".iblenv"
)

func faceNames() []string {
	return ibl.FaceNames[:]
}

func isFacePattern(p string) bool {
	return strings.Contains(filepath.Base(p), facePlaceholder)
}

func isIblEnv(p string) bool {
	return strings.EqualFold(filepath.Ext(p), iblEnvExt)
}

// facePath substitutes the face name into a face pattern.
func facePath(pattern string, face ibl.CubeMapFace) string {
	return strings.ReplaceAll(pattern, facePlaceholder, face.String())
}

// outputStem returns the output file name of p without extension, with suffix appended.
// The face placeholder is kept.
func outputStem(p, suffix string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix
}

// outputFacePattern builds the face pattern for results of input p.
func outputFacePattern(p, suffix, ext string) string {
	stem := outputStem(p, suffix)
	if !strings.Contains(stem, facePlaceholder) {
		stem += "_" + facePlaceholder
	}
	if ext == "" {
		ext = filepath.Ext(p)
		if isIblEnv(p) || ext == "" {
			ext = ".png"
		}
	}
	return filepath.Join(cargs.out, stem+ext)
}

var placeholderRemover = strings.NewReplacer(
	"_"+facePlaceholder, "",
	"-"+facePlaceholder, "",
	facePlaceholder+"_", "",
	facePlaceholder+"-", "",
	facePlaceholder, "",
)

// outputEnvPath builds the iblenv file name for results of input p.
func outputEnvPath(p, suffix string) string {
	stem := placeholderRemover.Replace(outputStem(p, suffix))
	stem = strings.Trim(stem, "_-. ")
	if stem == "" {
		stem = "environment"
	}
	return filepath.Join(cargs.out, stem+iblEnvExt)
}

// loadCubeMap reads either an iblenv file or the six face images of a face pattern.
// Faces are decoded concurrently.
func loadCubeMap(p string, srgb bool) (*ibl.CubeMap, error) {
	if isIblEnv(p) {
		inFile, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		defer close(inFile)

		env, err := ibl.DecodeIblEnv(inFile)
		if err != nil {
			return nil, fmt.Errorf("could not decode %q: %w", p, err)
		}
		return env, nil
	}

	if !isFacePattern(p) {
		return nil, fmt.Errorf("%q is neither an iblenv file nor contains the %s placeholder", p, facePlaceholder)
	}

	cube := &ibl.CubeMap{}
	var g errgroup.Group
	for i := range cube.Faces {
		face := ibl.CubeMapFace(i)
		g.Go(func() error {
			img, err := libio.LoadImage(facePath(p, face))
			if err != nil {
				return fmt.Errorf("face %v: %w", face, err)
			}
			if srgb {
				img.ToLinear()
			}
			cube.Faces[face] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return cube, cube.Validate()
}

// saveFaces writes the six faces of cube using a face pattern. Faces are encoded concurrently.
func saveFaces(pattern string, cube *ibl.CubeMap, srgb bool) error {
	var g errgroup.Group
	for i, img := range cube.Faces {
		img := img
		face := ibl.CubeMapFace(i)
		g.Go(func() error {
			out := img
			if srgb {
				out = img.Clone()
				out.ToSrgb()
			}
			return libio.SaveImage(facePath(pattern, face), out)
		})
	}
	return g.Wait()
}

func saveIblEnv(p string, cube *ibl.CubeMap, compress int) (err error) {
	outFile, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}

	err = ibl.EncodeIblEnv(outFile, cube, ibl.OptCompress(compress-1))
	cerr := outFile.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(p)
		return err
	}

	return nil
}

func displayPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
