// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether Run succeeds
	runFunc       func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
	calls         []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(_ context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	key := name + " " + strings.Join(args, " ")
	m.calls = append(m.calls, key)
	if m.runFunc != nil && len(args) > 0 && args[0] == "run" {
		return m.runFunc(name, args, stdin, stdout, stderr)
	}
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name       string
		preference string
		exec       *mockExecutor
		wantName   string
		wantErr    string
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name:       "podman fallback when docker missing",
			preference: Auto,
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "docker on PATH but info fails",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:       "explicit podman skips docker",
			preference: "podman",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "podman",
		},
		{
			name:       "explicit docker unavailable",
			preference: "docker",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantErr: "tried docker",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			wantErr: "no container runtime available",
		},
		{
			name:       "unknown preference",
			preference: "lxc",
			exec:       &mockExecutor{},
			wantErr:    "unknown container runtime",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(context.Background(), tt.preference, tt.exec)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		bin     string
		cmds    map[string]bool
		wantErr bool
	}{
		{bin: "docker", cmds: map[string]bool{"docker image inspect conv:latest": true}},
		{bin: "podman", cmds: map[string]bool{"podman image exists conv:latest": true}},
		{bin: "docker", cmds: map[string]bool{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.bin, func(t *testing.T) {
			rt := newRuntime(tt.bin, &mockExecutor{runnableCmds: tt.cmds})
			err := rt.ImageExists(context.Background(), "conv:latest")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "image conv:latest not found in docker")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	m := &mockExecutor{
		runFunc: func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return err
			}
			_, err = stdout.Write(bytes.ToUpper(data))
			return err
		},
	}
	rt := newRuntime("docker", m)

	var out bytes.Buffer
	err := rt.Run(context.Background(), RunSpec{
		Image:  "conv:latest",
		Args:   []string{"--to", "pptx"},
		Stdin:  strings.NewReader("deck"),
		Stdout: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "DECK", out.String())
	assert.Equal(t, []string{"docker run --rm -i --network none conv:latest --to pptx"}, m.calls)
}

func TestRunIncludesStderr(t *testing.T) {
	m := &mockExecutor{
		runFunc: func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
			io.WriteString(stderr, "soffice: cannot open input\n")
			return errors.New("exit status 1")
		},
	}
	err := newRuntime("podman", m).Run(context.Background(), RunSpec{Image: "conv", Stdout: io.Discard})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running podman container conv")
	assert.Contains(t, err.Error(), "soffice: cannot open input")
}
