package main

import (
	"flag"
	"time"
)

func createUnpackCommand() *command {
	args := commonArgs{
		ext: ".png",
	}

	flags := flag.NewFlagSet("unpack", flag.ExitOnError)

	registerCommonFlags(flags, &args)

	return &command{
		Name: "unpack",
		Help: "extract the six face images of iblenv files",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 {
				printCommandUsage(self, " iblenv-glob...")
			}
			setCommonArgs(&args)

			runUnpack(gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func runUnpack(inputFiles []string) {
	success := 0
	start := time.Now()
	for i, p := range inputFiles {
		info("Processing %d/%d %q ...\n", i+1, len(inputFiles), displayPath(p))
		err := unpackFile(p)
		softerr(err)
		if err == nil {
			success++
		}
	}
	took := float32(time.Since(start).Milliseconds()) / 1000
	info("Unpacked %d/%d cube maps in %.3f seconds\n", success, len(inputFiles), took)
}

func unpackFile(p string) error {
	cube, err := loadCubeMap(p, false)
	if err != nil {
		return err
	}

	pattern := outputFacePattern(p, cargs.suffix, cargs.ext)
	info("Writing %dx%d faces %q ...\n", cube.Size(), cube.Size(), displayPath(pattern))
	return saveFaces(pattern, cube, cargs.srgb)
}
