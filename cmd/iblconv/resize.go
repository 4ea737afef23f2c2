package main

import (
	"flag"
	"time"

	"ibldiffuse/ibl"
)

type resizeArgs struct {
	commonArgs
	size   int
	single bool
}

func createResizeCommand() *command {
	args := resizeArgs{
		commonArgs: commonArgs{
			suffix: "_resized",
		},
		size: 32,
	}

	flags := flag.NewFlagSet("resize", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)

	flags.IntVar(&args.size, "size", args.size, "the maximum face size, smaller faces are kept as they are")
	flags.IntVar(&args.size, "s", args.size, "shorthand for size")
	flags.BoolVar(&args.single, "single", args.single, "run on a single thread")

	return &command{
		Name: "resize",
		Help: "downsize cube maps with a bicubic filter",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 || args.size < 1 {
				printCommandUsage(self, " face-pattern|iblenv-glob...")
			}
			setCommonArgs(&args.commonArgs)

			runResize(args, gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func runResize(args resizeArgs, inputFiles []string) {
	var opts []ibl.ConvolveOption
	if args.single {
		opts = append(opts, ibl.OptSingleThreaded())
	}
	resizer := ibl.NewSwResizer(opts...)
	defer resizer.Release()

	success := 0
	start := time.Now()
	for i, p := range inputFiles {
		info("Processing %d/%d %q ...\n", i+1, len(inputFiles), displayPath(p))
		err := resizeFile(args, p, resizer)
		softerr(err)
		if err == nil {
			success++
		}
	}
	took := float32(time.Since(start).Milliseconds()) / 1000
	info("Resized %d/%d cube maps in %.3f seconds\n", success, len(inputFiles), took)
}

func resizeFile(args resizeArgs, p string, resizer ibl.Resizer) error {
	src, err := loadCubeMap(p, cargs.srgb)
	if err != nil {
		return err
	}

	result, err := resizer.Resize(src, args.size)
	if err != nil {
		return err
	}

	if isIblEnv(p) && cargs.ext == "" {
		envPath := outputEnvPath(p, cargs.suffix)
		info("Writing %dx%d cube map %q ...\n", result.Size(), result.Size(), displayPath(envPath))
		return saveIblEnv(envPath, result, cargs.compress)
	}

	pattern := outputFacePattern(p, cargs.suffix, cargs.ext)
	info("Writing %dx%d faces %q ...\n", result.Size(), result.Size(), displayPath(pattern))
	return saveFaces(pattern, result, cargs.srgb)
}
