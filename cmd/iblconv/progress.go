package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"ibldiffuse/ibl"

	"golang.org/x/term"
)

// progressPrinter reports convolution progress. On a terminal a single line is
// rewritten in place, otherwise a line is printed every 10%.
// Reports arrive from worker goroutines, possibly out of order.
type progressPrinter struct {
	mu      sync.Mutex
	w       io.Writer
	inplace bool
	phase   ibl.Phase
	done    int
	percent int
}

func newProgressPrinter() *progressPrinter {
	return &progressPrinter{
		w:       os.Stdout,
		inplace: term.IsTerminal(int(os.Stdout.Fd())),
		phase:   -1,
	}
}

func (pp *progressPrinter) report(phase ibl.Phase, done, total int) {
	pp.mu.Lock()
	defer pp.mu.Unlock()

	if phase != pp.phase {
		pp.phase = phase
		pp.done = 0
		pp.percent = -1
	}
	if done <= pp.done || total <= 0 {
		return
	}
	pp.done = done

	percent := done * 100 / total
	if !pp.inplace {
		percent = percent / 10 * 10
	}
	if percent == pp.percent {
		return
	}
	pp.percent = percent

	if pp.inplace {
		fmt.Fprintf(pp.w, "\r%s %3d%%", phase, percent)
		if done == total {
			fmt.Fprintln(pp.w)
		}
		return
	}
	fmt.Fprintf(pp.w, "%s %d%%\n", phase, percent)
}
