package ports

import "runtime-builder/internal/types"

type CrateManifestPort interface {
	// LoadManifest reads the Cargo.toml at path.
	LoadManifest(path string) (types.CrateManifest, error)

	// FindWorkspaceRoot walks up from crateDir looking for the
	// enclosing workspace manifest. The hint, when non-empty, names the
	// workspace directory directly.
	FindWorkspaceRoot(crateDir string, hint string) (string, error)
}
