package ports

import "context"

// RunRequest describes one external process invocation.
type RunRequest struct {
	Program string
	Args    []string

	// RemoveEnv lists variables stripped from the child environment.
	// Used to keep a host toolchain variable from overriding the
	// toolchain the invocation explicitly selects.
	RemoveEnv []string

	// ExtraEnv holds additional KEY=VALUE pairs for the child.
	ExtraEnv []string

	Dir string
}

// CommandRunner executes external programs. Probing and building both
// go through this port so the resolution logic can be tested with a
// fake process runner instead of real process spawning.
type CommandRunner interface {
	// Output runs the request and returns its captured standard output.
	// A non-nil error covers spawn failure and nonzero exit alike.
	Output(ctx context.Context, req RunRequest) ([]byte, error)

	// Run executes the request wired to the parent's stdio, for the
	// actual compilation step.
	Run(ctx context.Context, req RunRequest) error
}
