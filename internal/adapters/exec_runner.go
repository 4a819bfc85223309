package adapters

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"runtime-builder/internal/ports"
	"runtime-builder/internal/shared"
)

// ExecRunnerAdapter runs external programs with real process spawning.
// Probes await each child to completion; there is no timeout, so a hung
// toolchain blocks resolution. That limitation is inherited from having
// to shell out to arbitrary external tooling.
type ExecRunnerAdapter struct{}

func NewExecRunnerAdapter() ExecRunnerAdapter {
	return ExecRunnerAdapter{}
}

func (a ExecRunnerAdapter) Output(ctx context.Context, req ports.RunRequest) ([]byte, error) {
	cmd := exec.CommandContext(ctx, req.Program, req.Args...)
	cmd.Dir = req.Dir
	cmd.Env = childEnv(os.Environ(), req)
	out, err := cmd.Output()
	if err != nil {
		return nil, shared.CommandError(out, err)
	}
	return out, nil
}

func (a ExecRunnerAdapter) Run(ctx context.Context, req ports.RunRequest) error {
	cmd := exec.CommandContext(ctx, req.Program, req.Args...)
	cmd.Dir = req.Dir
	cmd.Env = childEnv(os.Environ(), req)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return shared.CommandError(nil, err)
	}
	return nil
}

// childEnv applies the request's environment edits to a base
// environment: RemoveEnv entries are dropped, ExtraEnv is appended.
func childEnv(base []string, req ports.RunRequest) []string {
	removed := map[string]struct{}{}
	for _, key := range req.RemoveEnv {
		removed[key] = struct{}{}
	}
	env := make([]string, 0, len(base)+len(req.ExtraEnv))
	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		if _, ok := removed[key]; ok {
			continue
		}
		env = append(env, entry)
	}
	return append(env, req.ExtraEnv...)
}

var _ ports.CommandRunner = ExecRunnerAdapter{}
