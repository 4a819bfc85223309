package core

import (
	"context"
	"fmt"
	"strings"

	"runtime-builder/internal/ports"
)

// fakeRunner is a substitutable process runner for tests. Output is
// looked up by the full command line; unknown command lines fail, which
// models a missing program or an unsupported flag.
type fakeRunner struct {
	outputs map[string]string
	calls   []string

	// removedEnv records the RemoveEnv of every invocation, keyed the
	// same way as outputs.
	removedEnv map[string][]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs:    map[string]string{},
		removedEnv: map[string][]string{},
	}
}

func commandLine(req ports.RunRequest) string {
	return strings.Join(append([]string{req.Program}, req.Args...), " ")
}

func (f *fakeRunner) stub(line string, output string) {
	f.outputs[line] = output
}

// stubToolchain registers version (and optionally target-list) probes
// for one candidate command line prefix.
func (f *fakeRunner) stubToolchain(prefix string, versionOutput string, targets ...string) {
	f.stub(prefix+" --version", versionOutput)
	if len(targets) > 0 {
		f.stub(prefix+" rustc -Z unstable-options --print target-list", strings.Join(targets, "\n"))
	}
}

func (f *fakeRunner) Output(_ context.Context, req ports.RunRequest) ([]byte, error) {
	line := commandLine(req)
	f.calls = append(f.calls, line)
	f.removedEnv[line] = append([]string(nil), req.RemoveEnv...)
	out, ok := f.outputs[line]
	if !ok {
		return nil, fmt.Errorf("command failed: %s", line)
	}
	return []byte(out), nil
}

func (f *fakeRunner) Run(ctx context.Context, req ports.RunRequest) error {
	_, err := f.Output(ctx, req)
	return err
}

func (f *fakeRunner) called(line string) bool {
	for _, call := range f.calls {
		if call == line {
			return true
		}
	}
	return false
}

var _ ports.CommandRunner = (*fakeRunner)(nil)
