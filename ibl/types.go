package ibl

type Convolver interface {
	Convolve(env *CubeMap) (*CubeMap, error)
	Release()
}

type Resizer interface {
	Resize(env *CubeMap, size int) (*CubeMap, error)
	Release()
}
