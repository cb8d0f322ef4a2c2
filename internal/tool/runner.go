// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tool implements detection and execution of the external
// pdftotext binary used by the pdftotext extraction backend.
package tool

import (
	"fmt"
	"io"
	"os/exec"
)

const binPdftotext = "pdftotext"

// Runner provides external-tool operations: checking availability and
// running an extraction with piped output.
type Runner interface {
	// Name returns the tool binary name.
	Name() string

	// Available reports whether the binary exists on PATH and responds
	// to a version query.
	Available() bool

	// Extract runs the tool on pdfPath, writing the extracted text to
	// stdout. Page breaks are preserved as form feeds.
	Extract(pdfPath string, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(name string, args []string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	return cmd.Run()
}

// runner implements Runner for the pdftotext binary.
type runner struct {
	bin  string
	exec executor
}

func (r *runner) Name() string { return r.bin }

func (r *runner) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "-v") == nil
}

func (r *runner) Extract(pdfPath string, stdout io.Writer) error {
	// "-" sends the text to stdout; form-feed page breaks stay in so the
	// caller can split pages.
	args := []string{"-q", "-enc", "UTF-8", "-eol", "unix", pdfPath, "-"}
	if err := r.exec.RunPiped(r.bin, args, stdout); err != nil {
		return fmt.Errorf("running %s on %s: %w", r.bin, pdfPath, err)
	}
	return nil
}

func newPdftotextRunner(exec executor) *runner {
	return &runner{bin: binPdftotext, exec: exec}
}

var defaultExec = &osExecutor{}

// DetectRunner locates the pdftotext binary. Returns an error if the
// binary is missing or not operational.
func DetectRunner() (Runner, error) {
	return detectRunner(defaultExec)
}

func detectRunner(exec executor) (Runner, error) {
	r := newPdftotextRunner(exec)
	if !r.Available() {
		return nil, fmt.Errorf("%s not found on PATH or not operational", binPdftotext)
	}
	return r, nil
}
