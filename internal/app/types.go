package app

import "runtime-builder/internal/types"

type ResolveRequest struct {
	Config types.BuildConfig

	// OutputDir, when set, receives a toolchain.yaml report.
	OutputDir string
}

type ResolveResult struct {
	Report     types.ToolchainReport
	ReportPath string
}

type CheckRequest struct {
	Config types.BuildConfig
}

type CheckResult struct {
	Report types.ToolchainReport
}

type BuildRequest struct {
	Config    types.BuildConfig
	CrateDir  string
	OutputDir string
}

type BuildResult struct {
	Skipped      bool
	CrateName    string
	ArtifactPath string
	Digest       string
	ReportPath   string
}
