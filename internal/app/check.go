package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"runtime-builder/internal/core"
	"runtime-builder/internal/types"
)

// Check resolves the toolchain and then verifies it actually qualifies
// for the target. Resolution never second-guesses a pinned toolchain;
// this is the stage that owns the actionable failure report when the
// pin (or anything else resolution returned) cannot build the runtime.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	resolved, err := s.resolveToolchain(ctx, req.Config)
	if err != nil {
		return CheckResult{}, err
	}
	if err := verifyCapability(resolved, req.Config); err != nil {
		return CheckResult{}, err
	}
	return CheckResult{Report: toolchainReport(resolved, req.Config)}, nil
}

// verifyCapability names the exact missing capability so the user gets
// an actionable message rather than a generic failure.
func verifyCapability(resolved core.ResolvedToolchain, cfg types.BuildConfig) error {
	if resolved.Command.Supports(cfg.Target, cfg.Bootstrap) {
		return nil
	}
	switch cfg.Target {
	case types.TargetKindRiscv:
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("the selected toolchain does not list the %s target; a toolchain built with riscv runtime support is required", cfg.Target.RustcTarget()))
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("the selected toolchain cannot compile the wasm runtime; rust stable >= 1.68.0 or any nightly is required")
	}
}
