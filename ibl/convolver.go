package ibl

const (
	DefaultMaxSourceSize = 64
	DefaultMaxOutputSize = 64
)

type Phase int

const (
	PhaseResizeSource = Phase(iota)
	PhaseConvolve
	PhaseResizeOutput
)

func (p Phase) String() string {
	switch p {
	case PhaseResizeSource:
		return "downsize source"
	case PhaseConvolve:
		return "convolution"
	case PhaseResizeOutput:
		return "downsize output"
	default:
		return "unknown"
	}
}

// ProgressFunc receives the number of finished work units of a phase.
// It is called from worker goroutines and may run concurrently with itself.
type ProgressFunc func(phase Phase, done, total int)

type convolveConfig struct {
	maxSourceSize int
	maxOutputSize int
	threads       int
	progress      ProgressFunc
}

type ConvolveOption func(cfg *convolveConfig)

func newConvolveConfig(options []ConvolveOption) convolveConfig {
	cfg := convolveConfig{
		maxSourceSize: DefaultMaxSourceSize,
		maxOutputSize: DefaultMaxOutputSize,
		threads:       defaultThreads(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// OptMaxSourceSize limits the face size the integral runs on. Larger sources are downsized first.
// A size of 0 disables the limit.
func OptMaxSourceSize(size int) ConvolveOption {
	return func(cfg *convolveConfig) {
		cfg.maxSourceSize = size
	}
}

// OptMaxOutputSize limits the face size of the result. A size of 0 disables the limit.
func OptMaxOutputSize(size int) ConvolveOption {
	return func(cfg *convolveConfig) {
		cfg.maxOutputSize = size
	}
}

func OptThreads(threads int) ConvolveOption {
	return func(cfg *convolveConfig) {
		if threads < 1 {
			threads = defaultThreads()
		}
		cfg.threads = threads
	}
}

// OptSingleThreaded runs every phase on the calling goroutine.
func OptSingleThreaded() ConvolveOption {
	return OptThreads(1)
}

func OptProgress(progress ProgressFunc) ConvolveOption {
	return func(cfg *convolveConfig) {
		cfg.progress = progress
	}
}

func (cfg *convolveConfig) onDone(phase Phase, total int) func(done int) {
	if cfg.progress == nil {
		return nil
	}
	progress := cfg.progress
	return func(done int) {
		progress(phase, done, total)
	}
}

type swDiffuseConvolver struct {
	cfg convolveConfig
}

func NewSwDiffuseConvolver(options ...ConvolveOption) Convolver {
	return &swDiffuseConvolver{cfg: newConvolveConfig(options)}
}

func (conv *swDiffuseConvolver) Release() {
}

// Convolve computes the diffuse irradiance cube map of env.
// env is not modified. Invalid cube maps are rejected before any work starts.
func (conv *swDiffuseConvolver) Convolve(env *CubeMap) (*CubeMap, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	cfg := &conv.cfg
	src := env
	if cfg.maxSourceSize > 0 && src.Size() > cfg.maxSourceSize {
		src = downsizeCubeMap(src, cfg.maxSourceSize, cfg.threads, cfg.onDone(PhaseResizeSource, len(src.Faces)))
	}

	dst := NewCubeMap(src.Size())
	integrator := NewIntegrator(src)
	rows := dst.Rows()
	runParallel(rows, cfg.threads, func(row int) {
		integrator.convolveRow(dst, row)
	}, cfg.onDone(PhaseConvolve, rows))

	if cfg.maxOutputSize > 0 && dst.Size() > cfg.maxOutputSize {
		dst = downsizeCubeMap(dst, cfg.maxOutputSize, cfg.threads, cfg.onDone(PhaseResizeOutput, len(dst.Faces)))
	}

	return dst, nil
}
