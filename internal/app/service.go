package app

import (
	"runtime-builder/internal/adapters"
	"runtime-builder/internal/ports"
)

type Service struct {
	Runner   ports.CommandRunner
	Manifest ports.CrateManifestPort
	Artifact ports.ArtifactPort

	// RustupProgram overrides the version-switching tool, for tests.
	RustupProgram string
}

func NewService() Service {
	return Service{
		Runner:   adapters.NewExecRunnerAdapter(),
		Manifest: adapters.NewManifestFileAdapter(),
		Artifact: adapters.NewArtifactFileAdapter(),
	}
}
