package main

import (
	"flag"
	"time"

	"ibldiffuse/ibl"
)

type diffuseArgs struct {
	commonArgs
	sourceSize int
	outputSize int
	single     bool
	iblenv     bool
}

func createDiffuseCommand() *command {
	args := diffuseArgs{
		commonArgs: commonArgs{
			suffix:   "_diffuse",
			compress: 2,
		},
		sourceSize: ibl.DefaultMaxSourceSize,
		outputSize: ibl.DefaultMaxOutputSize,
	}

	flags := flag.NewFlagSet("diffuse", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)

	flags.IntVar(&args.sourceSize, "source-size", args.sourceSize, "larger source faces are downsized to this size before convolution, 0 to disable")
	flags.IntVar(&args.outputSize, "output-size", args.outputSize, "larger result faces are downsized to this size, 0 to disable")
	flags.BoolVar(&args.single, "single", args.single, "run on a single thread")
	flags.BoolVar(&args.iblenv, "iblenv", args.iblenv, "additionally write the result as an iblenv file")

	return &command{
		Name: "diffuse",
		Help: "create diffuse irradiance cube maps",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 || args.compress < 0 || args.compress > 10 || args.sourceSize < 0 || args.outputSize < 0 {
				printCommandUsage(self, " face-pattern|iblenv-glob...")
			}
			setCommonArgs(&args.commonArgs)

			runDiffuse(args, gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func newDiffuseConvolver(args diffuseArgs) ibl.Convolver {
	opts := []ibl.ConvolveOption{
		ibl.OptMaxSourceSize(args.sourceSize),
		ibl.OptMaxOutputSize(args.outputSize),
	}
	if args.single {
		opts = append(opts, ibl.OptSingleThreaded())
	}
	if !cargs.quiet {
		opts = append(opts, ibl.OptProgress(newProgressPrinter().report))
	}
	return ibl.NewSwDiffuseConvolver(opts...)
}

func runDiffuse(args diffuseArgs, inputFiles []string) {
	success := 0
	start := time.Now()
	for i, p := range inputFiles {
		info("Processing %d/%d %q ...\n", i+1, len(inputFiles), displayPath(p))
		err := diffuseFile(args, p)
		softerr(err)
		if err == nil {
			success++
		}
	}
	took := float32(time.Since(start).Milliseconds()) / 1000
	info("Convolved %d/%d cube maps in %.3f seconds\n", success, len(inputFiles), took)
}

func diffuseFile(args diffuseArgs, p string) error {
	src, err := loadCubeMap(p, cargs.srgb)
	if err != nil {
		return err
	}

	conv := newDiffuseConvolver(args)
	defer conv.Release()

	info("Convolving %dx%d cube map ...\n", src.Size(), src.Size())
	result, err := conv.Convolve(src)
	if err != nil {
		return err
	}

	pattern := outputFacePattern(p, cargs.suffix, cargs.ext)
	info("Writing %dx%d faces %q ...\n", result.Size(), result.Size(), displayPath(pattern))
	if err := saveFaces(pattern, result, cargs.srgb); err != nil {
		return err
	}

	if args.iblenv {
		envPath := outputEnvPath(p, cargs.suffix)
		info("Writing %q ...\n", displayPath(envPath))
		if err := saveIblEnv(envPath, result, cargs.compress); err != nil {
			return err
		}
	}

	return nil
}
