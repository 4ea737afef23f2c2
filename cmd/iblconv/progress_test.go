package main

import (
	"bytes"
	"strings"
	"testing"

	"ibldiffuse/ibl"
)

func TestProgressLines(t *testing.T) {
	buf := &bytes.Buffer{}
	pp := &progressPrinter{w: buf, phase: -1}

	for done := 1; done <= 6; done++ {
		pp.report(ibl.PhaseResizeSource, done, 6)
	}
	// out of order and repeated reports are dropped
	for _, done := range []int{1, 2, 5, 3, 20, 19, 20} {
		pp.report(ibl.PhaseConvolve, done, 20)
	}

	expected := []string{
		"downsize source 10%",
		"downsize source 30%",
		"downsize source 50%",
		"downsize source 60%",
		"downsize source 80%",
		"downsize source 100%",
		"convolution 0%",
		"convolution 10%",
		"convolution 20%",
		"convolution 100%",
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if strings.Join(lines, "|") != strings.Join(expected, "|") {
		t.Errorf("progress should be\n%s\nbut was\n%s\n", strings.Join(expected, "\n"), buf.String())
	}
}

func TestProgressInPlace(t *testing.T) {
	buf := &bytes.Buffer{}
	pp := &progressPrinter{w: buf, phase: -1, inplace: true}

	for done := 1; done <= 4; done++ {
		pp.report(ibl.PhaseConvolve, done, 4)
	}

	expected := "\rconvolution  25%\rconvolution  50%\rconvolution  75%\rconvolution 100%\n"
	if buf.String() != expected {
		t.Errorf("progress should be %q but was %q\n", expected, buf.String())
	}
}
