package app

import (
	"context"
	"fmt"
	"strings"

	"runtime-builder/internal/adapters"
	"runtime-builder/internal/ports"
)

// fakeRunner substitutes process spawning in application tests. Probe
// output is looked up by the full command line; the onRun hook stands
// in for the compilation side effects.
type fakeRunner struct {
	outputs map[string]string
	onRun   func(req ports.RunRequest) error
	runs    []ports.RunRequest
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{}}
}

func (f *fakeRunner) stub(line string, output string) {
	f.outputs[line] = output
}

func (f *fakeRunner) Output(_ context.Context, req ports.RunRequest) ([]byte, error) {
	line := strings.Join(append([]string{req.Program}, req.Args...), " ")
	out, ok := f.outputs[line]
	if !ok {
		return nil, fmt.Errorf("command failed: %s", line)
	}
	return []byte(out), nil
}

func (f *fakeRunner) Run(_ context.Context, req ports.RunRequest) error {
	f.runs = append(f.runs, req)
	if f.onRun != nil {
		return f.onRun(req)
	}
	return nil
}

var _ ports.CommandRunner = (*fakeRunner)(nil)

func testService(runner ports.CommandRunner) Service {
	return Service{
		Runner:   runner,
		Manifest: adapters.NewManifestFileAdapter(),
		Artifact: adapters.NewArtifactFileAdapter(),
	}
}
