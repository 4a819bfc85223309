package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"runtime-builder/internal/adapters"
	"runtime-builder/internal/core"
	"runtime-builder/internal/types"
)

// Resolve picks the toolchain for the configured target and optionally
// persists the outcome as a report file.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	resolved, err := s.resolveToolchain(ctx, req.Config)
	if err != nil {
		return ResolveResult{}, err
	}
	result := ResolveResult{Report: toolchainReport(resolved, req.Config)}
	log.Ctx(ctx).Debug().
		Str("program", result.Report.Program).
		Str("rustc_version", result.Report.RustcVersion).
		Msg("toolchain resolved")

	if req.OutputDir != "" {
		writer := adapters.NewReportFileAdapter(req.OutputDir)
		path, err := writer.WriteToolchainReport(result.Report)
		if err != nil {
			return ResolveResult{}, err
		}
		result.ReportPath = path
	}
	return result, nil
}

func (s Service) resolveToolchain(ctx context.Context, cfg types.BuildConfig) (core.ResolvedToolchain, error) {
	resolver := core.NewResolver(s.Runner)
	if s.RustupProgram != "" {
		resolver.RustupProgram = s.RustupProgram
	}
	return resolver.Resolve(ctx, cfg)
}

func toolchainReport(resolved core.ResolvedToolchain, cfg types.BuildConfig) types.ToolchainReport {
	version, _ := resolved.Command.Version()
	return types.ToolchainReport{
		Program:      resolved.Command.Program(),
		Args:         resolved.Command.Args(),
		RustcVersion: resolved.RustcVersion,
		Target:       string(cfg.Target),
		TargetTriple: cfg.Target.RustcTarget(),
		Nightly:      version.IsNightly,
	}
}
