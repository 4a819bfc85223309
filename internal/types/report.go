package types

// ToolchainReport is the persisted record of a resolution outcome.
// Downstream build steps key their cache invalidation on the exact
// compiler version string, not just the wrapper program name.
type ToolchainReport struct {
	Program      string   `yaml:"program"`
	Args         []string `yaml:"args,omitempty"`
	RustcVersion string   `yaml:"rustc_version"`
	Target       string   `yaml:"target"`
	TargetTriple string   `yaml:"target_triple"`
	Nightly      bool     `yaml:"nightly"`
}

// ArtifactRecord describes the produced runtime binary.
type ArtifactRecord struct {
	Path   string `yaml:"path"`
	Digest string `yaml:"digest"`
}

// BuildReport bundles the toolchain and artifact records written after
// a successful build.
type BuildReport struct {
	Toolchain ToolchainReport `yaml:"toolchain"`
	Artifact  ArtifactRecord  `yaml:"artifact"`
}

// CrateManifest is the subset of a Cargo.toml manifest the builder
// needs: the crate name and whether the manifest declares a workspace.
type CrateManifest struct {
	Name        string
	IsWorkspace bool
	Path        string
}
