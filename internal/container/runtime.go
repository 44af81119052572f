// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs conversion images under docker or podman.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"

	// Auto selects docker when available and falls back to podman.
	Auto = "auto"
)

// RunSpec describes a single container invocation. The container gets no
// network access; input arrives on stdin and output leaves on stdout.
type RunSpec struct {
	Image  string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
}

// Runtime provides the container operations needed for conversion.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available(ctx context.Context) bool

	// ImageExists returns nil when the image is present locally.
	ImageExists(ctx context.Context, image string) error

	// Run executes a throwaway container described by spec.
	Run(ctx context.Context, spec RunSpec) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runtime implements Runtime for one binary. Docker and Podman differ only
// in the subcommand that checks for a local image.
type runtime struct {
	bin           string
	imageCheckCmd []string
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available(ctx context.Context) bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.Run(ctx, r.bin, []string{"info"}, nil, io.Discard, io.Discard) == nil
}

func (r *runtime) ImageExists(ctx context.Context, image string) error {
	args := append(append([]string{}, r.imageCheckCmd...), image)
	if err := r.exec.Run(ctx, r.bin, args, nil, io.Discard, io.Discard); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, spec RunSpec) error {
	args := append([]string{"run", "--rm", "-i", "--network", "none", spec.Image}, spec.Args...)
	var stderr bytes.Buffer
	if err := r.exec.Run(ctx, r.bin, args, spec.Stdin, spec.Stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", r.bin, spec.Image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", r.bin, spec.Image, err)
	}
	return nil
}

func newRuntime(bin string, exec executor) *runtime {
	check := []string{"image", "inspect"}
	if bin == binPodman {
		check = []string{"image", "exists"}
	}
	return &runtime{bin: bin, imageCheckCmd: check, exec: exec}
}

// DetectRuntime returns the runtime named by preference ("docker",
// "podman") or, for "" and Auto, docker with a podman fallback.
func DetectRuntime(ctx context.Context, preference string) (Runtime, error) {
	return detectRuntime(ctx, preference, osExecutor{})
}

func detectRuntime(ctx context.Context, preference string, exec executor) (Runtime, error) {
	var candidates []string
	switch preference {
	case "", Auto:
		candidates = []string{binDocker, binPodman}
	case binDocker, binPodman:
		candidates = []string{preference}
	default:
		return nil, fmt.Errorf("unknown container runtime %q: use docker, podman, or auto", preference)
	}

	for _, bin := range candidates {
		rt := newRuntime(bin, exec)
		if rt.Available(ctx) {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: tried %s", strings.Join(candidates, ", "))
}
