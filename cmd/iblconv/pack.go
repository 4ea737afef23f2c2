package main

import (
	"flag"
	"time"
)

func createPackCommand() *command {
	args := commonArgs{
		compress: 2,
	}

	flags := flag.NewFlagSet("pack", flag.ExitOnError)

	registerCommonFlags(flags, &args)

	return &command{
		Name: "pack",
		Help: "pack six face images into an iblenv file",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 || args.compress < 0 || args.compress > 10 {
				printCommandUsage(self, " face-pattern...")
			}
			setCommonArgs(&args)

			runPack(gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func runPack(inputFiles []string) {
	success := 0
	start := time.Now()
	for i, p := range inputFiles {
		info("Processing %d/%d %q ...\n", i+1, len(inputFiles), displayPath(p))
		err := packFile(p)
		softerr(err)
		if err == nil {
			success++
		}
	}
	took := float32(time.Since(start).Milliseconds()) / 1000
	info("Packed %d/%d cube maps in %.3f seconds\n", success, len(inputFiles), took)
}

func packFile(p string) error {
	cube, err := loadCubeMap(p, cargs.srgb)
	if err != nil {
		return err
	}

	envPath := outputEnvPath(p, cargs.suffix)
	info("Writing %dx%d cube map %q ...\n", cube.Size(), cube.Size(), displayPath(envPath))
	return saveIblEnv(envPath, cube, cargs.compress)
}
