package ibl

import "errors"

var (
	ErrMissingFace      = errors.New("cube map face is missing")
	ErrEmptyFace        = errors.New("cube map face has zero size")
	ErrNotSquare        = errors.New("cube map face is not square")
	ErrFaceSizeMismatch = errors.New("cube map faces are not all the same size")
	ErrBadPixelData     = errors.New("cube map face is not a dense rgb buffer")
	ErrSizeLimit        = errors.New("cube map face exceeds the size limit")
)
