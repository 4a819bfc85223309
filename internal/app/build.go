package app

import (
	"context"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"runtime-builder/internal/adapters"
	"runtime-builder/internal/core"
	"runtime-builder/internal/ports"
	"runtime-builder/internal/shared"
	"runtime-builder/internal/types"
)

// wasmBaseRustflags keeps the export table present in the produced
// binary so the executor can enumerate runtime entry points.
const wasmBaseRustflags = "-C link-arg=--export-table"

// Build runs the whole pipeline: resolve a toolchain, verify it, run
// the compilation, and place the produced binary plus a build report in
// the output directory.
func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	cfg := req.Config
	if cfg.Skip {
		log.Ctx(ctx).Info().Msg("runtime build skipped by request")
		return BuildResult{Skipped: true}, nil
	}
	crateDir := strings.TrimSpace(req.CrateDir)
	if crateDir == "" {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("crate directory is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}

	manifest, err := s.Manifest.LoadManifest(filepath.Join(crateDir, "Cargo.toml"))
	if err != nil {
		return BuildResult{}, err
	}
	assert.NotEmpty(ctx, manifest.Name, "crate manifest must name a package")

	workspaceRoot, err := s.Manifest.FindWorkspaceRoot(crateDir, cfg.WorkspaceHint)
	if err != nil {
		return BuildResult{}, err
	}

	resolved, err := s.resolveToolchain(ctx, cfg)
	if err != nil {
		return BuildResult{}, err
	}
	if err := verifyCapability(resolved, cfg); err != nil {
		return BuildResult{}, err
	}

	targetDir := cfg.TargetDirectory
	if targetDir == "" {
		targetDir = filepath.Join(workspaceRoot, "target")
	}
	buildDir := filepath.Join(targetDir, cfg.Target.BuildSubdirectory())

	invocation := buildInvocation(ctx, resolved, cfg, crateDir, buildDir)
	log.Ctx(ctx).Info().
		Str("program", invocation.Program).
		Strs("args", invocation.Args).
		Msg("compiling runtime")
	if err := s.Runner.Run(ctx, invocation); err != nil {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("runtime compilation failed").
			WithCause(err)
	}

	produced := filepath.Join(
		buildDir,
		cfg.Target.RustcTarget(),
		cfg.BuildType.CargoProfileDirectory(),
		artifactName(manifest.Name, cfg.Target),
	)
	artifactPath := filepath.Join(outputDir, artifactName(manifest.Name, cfg.Target))
	if err := s.Artifact.CopyIfChanged(produced, artifactPath); err != nil {
		return BuildResult{}, err
	}
	digest, err := s.Artifact.Digest(artifactPath)
	if err != nil {
		return BuildResult{}, err
	}

	writer := adapters.NewReportFileAdapter(outputDir)
	reportPath, err := writer.WriteBuildReport(types.BuildReport{
		Toolchain: toolchainReport(resolved, cfg),
		Artifact:  types.ArtifactRecord{Path: artifactPath, Digest: digest},
	})
	if err != nil {
		return BuildResult{}, err
	}

	return BuildResult{
		CrateName:    manifest.Name,
		ArtifactPath: artifactPath,
		Digest:       digest,
		ReportPath:   reportPath,
	}, nil
}

// buildInvocation assembles the cargo command line for the resolved
// toolchain.
func buildInvocation(ctx context.Context, resolved core.ResolvedToolchain, cfg types.BuildConfig, crateDir string, buildDir string) ports.RunRequest {
	triple := cfg.Target.RustcTarget()
	assert.NotEmpty(ctx, triple, "target kind must map to a rustc triple")
	assert.NotEmpty(ctx, cfg.Target.BuildSubdirectory(), "target kind must map to a build subdirectory")

	args := []string{
		"rustc",
		"--target", triple,
		"--target-dir", buildDir,
		"--manifest-path", filepath.Join(crateDir, "Cargo.toml"),
	}
	switch cfg.BuildType {
	case types.BuildTypeRelease:
		args = append(args, "--release")
	case types.BuildTypeProduction:
		args = append(args, "--profile", "production")
	}
	if cfg.Offline {
		args = append(args, "--offline")
	}
	if cfg.NoColor {
		args = append(args, "--color=never")
	} else {
		args = append(args, "--color=always")
	}

	var extraEnv []string
	if cfg.BuildStdEnabled() {
		args = append(args, "-Z", "build-std=core,alloc")
		if !resolved.Command.SupportsNightlyFeatures(cfg.Bootstrap) {
			// build-std is unstable; let a stable compiler accept it.
			extraEnv = append(extraEnv, "RUSTC_BOOTSTRAP=1")
		}
	}

	var rustflags string
	if cfg.Target == types.TargetKindWasm {
		rustflags = shared.JoinFlags(wasmBaseRustflags, cfg.ExtraRustflags)
	} else {
		rustflags = shared.JoinFlags(cfg.ExtraRustflags)
	}
	if rustflags != "" {
		extraEnv = append(extraEnv, "RUSTFLAGS="+rustflags)
	}

	req := resolved.Command.Request(args...)
	req.Dir = crateDir
	req.ExtraEnv = extraEnv
	// The host toolchain variable must not override the toolchain the
	// resolved command explicitly selects.
	req.RemoveEnv = []string{"RUSTC"}
	return req
}

// artifactName derives the produced binary name from the crate name:
// cargo replaces hyphens with underscores, and wasm artifacts carry the
// .wasm extension.
func artifactName(crateName string, target types.TargetKind) string {
	snake := strings.ReplaceAll(crateName, "-", "_")
	if target == types.TargetKindWasm {
		return snake + ".wasm"
	}
	return snake
}
