package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ibldiffuse/libio"

	"golang.org/x/exp/slices"
)

type commonArgs struct {
	compress int
	out      string
	quiet    bool
	supress  bool
	srgb     bool
	ext      string
	suffix   string
}

var cargs *commonArgs

type command struct {
	Run   func(self *command)
	Name  string
	Help  string
	Flags *flag.FlagSet
}

var commands = []*command{}

func printGeneralUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [arguments]\n\n", exe)
	fmt.Fprintf(os.Stderr, "The commands are:\n\n")
	longest := slices.MaxFunc(commands, func(a, b *command) int {
		return len(a.Name) - len(b.Name)
	})
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "    %*s%s\n", -len(longest.Name)-4, c.Name, c.Help)
	}
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintf(os.Stderr, "Cube map faces are given as a file pattern containing %s,\n", facePlaceholder)
	fmt.Fprintf(os.Stderr, "which is replaced by %s.\n\n", strings.Join(faceNames(), ", "))
	os.Exit(1)
}

func printCommandUsage(cmd *command, suffix string) {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s %s [arguments]%s\n\n", exe, cmd.Name, suffix)
	fmt.Fprintf(os.Stderr, "The arguments are:\n\n")
	cmd.Flags.SetOutput(os.Stderr)
	cmd.Flags.PrintDefaults()
	os.Exit(1)
}

func main() {
	commands = append(commands, createDiffuseCommand())
	commands = append(commands, createPackCommand())
	commands = append(commands, createUnpackCommand())
	commands = append(commands, createResizeCommand())

	slices.SortFunc(commands, func(a, b *command) int {
		return strings.Compare(a.Name, b.Name)
	})

	if len(os.Args) < 2 {
		printGeneralUsage()
	}

	idx := slices.IndexFunc(commands, func(c *command) bool {
		return strings.EqualFold(c.Name, os.Args[1])
	})
	if idx < 0 {
		printGeneralUsage()
	}
	cmd := commands[idx]

	err := cmd.Flags.Parse(os.Args[2:])
	harderr(err)

	cmd.Run(cmd)
}

func registerCommonFlags(flags *flag.FlagSet, args *commonArgs) {
	flags.IntVar(&args.compress, "compress", args.compress, "the iblenv compression level from 0 (none) to 10 (high)")
	flags.IntVar(&args.compress, "c", args.compress, "shorthand for compress")
	flags.StringVar(&args.out, "out", args.out, "the output directory")
	flags.StringVar(&args.out, "o", args.out, "shorthand for out")
	flags.BoolVar(&args.quiet, "quiet", args.quiet, "disables informational logging")
	flags.BoolVar(&args.quiet, "q", args.quiet, "shorthand for quiet")
	flags.BoolVar(&args.supress, "supress", args.supress, "disables soft error logging")
	flags.BoolVar(&args.srgb, "srgb", args.srgb, "face images are sRGB encoded and converted to linear on load and back on save")
	flags.StringVar(&args.ext, "ext", args.ext, "the result file extension")
	flags.StringVar(&args.suffix, "suffix", args.suffix, "the result file suffix")
}

func setCommonArgs(args *commonArgs) {
	cargs = args
	if args.out == "" {
		var err error
		args.out, err = os.Getwd()
		harderr(err)
	}

	_, err := os.Stat(args.out)
	if err != nil {
		harderr(fmt.Errorf("cannot stat output directory: %w", err))
	}
}

// gatherInputFiles expands file globs. Face patterns are passed through unchanged.
// Files that are neither iblenv files nor supported images are reported and skipped.
func gatherInputFiles(globs []string) []string {
	matched := []string{}

	for _, g := range globs {
		if isFacePattern(g) {
			if !libio.IsSupported(g) {
				softerr(fmt.Errorf("%q: %w", g, libio.ErrUnsupportedFormat))
				continue
			}
			matched = append(matched, g)
			continue
		}
		m, err := filepath.Glob(g)
		softerr(err)
		if len(m) == 0 {
			softerr(fmt.Errorf("no files match %q", g))
		}
		for _, p := range m {
			if !isIblEnv(p) && !libio.IsSupported(p) {
				softerr(fmt.Errorf("%q: %w", p, libio.ErrUnsupportedFormat))
				continue
			}
			matched = append(matched, p)
		}
	}

	return matched
}

func close(closer io.Closer) {
	closer.Close()
}

func softerr(err error) bool {
	if err != nil && !cargs.supress {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true
	}
	return false
}

func harderr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func info(format string, a ...any) {
	if !cargs.quiet {
		fmt.Printf(format, a...)
	}
}
