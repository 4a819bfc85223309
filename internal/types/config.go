package types

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Environment variables recognized by the builder. These form the
// contract with the outer build orchestration and are read exactly once
// into a BuildConfig at startup.
const (
	EnvToolchain       = "RUNTIME_BUILD_TOOLCHAIN"
	EnvCargo           = "CARGO"
	EnvTarget          = "RUNTIME_TARGET"
	EnvBootstrap       = "RUSTC_BOOTSTRAP"
	EnvBuildType       = "RUNTIME_BUILD_TYPE"
	EnvRustflags       = "RUNTIME_BUILD_RUSTFLAGS"
	EnvTargetDirectory = "RUNTIME_TARGET_DIRECTORY"
	EnvNoColor         = "RUNTIME_BUILD_NO_COLOR"
	EnvBuildStd        = "RUNTIME_BUILD_STD"
	EnvOffline         = "CARGO_NET_OFFLINE"
	EnvSkipBuild       = "SKIP_RUNTIME_BUILD"
	EnvWorkspaceHint   = "RUNTIME_BUILD_WORKSPACE_HINT"
)

// EnvLookup abstracts environment access so configuration loading can
// be tested without mutating the process environment.
type EnvLookup func(key string) (string, bool)

// BuildConfig is the consolidated ambient configuration for one build
// invocation. All environment reads happen in LoadBuildConfig; nothing
// else in the codebase consults the process environment directly.
type BuildConfig struct {
	// Toolchain pins a specific toolchain identifier to run through the
	// version-switching tool. When set, toolchain resolution is bypassed.
	Toolchain string

	// CargoPath is the compiler front-end designated by the invoking
	// build system (the CARGO variable).
	CargoPath string

	// Target selects the runtime target kind being built.
	Target TargetKind

	// Bootstrap reports whether RUSTC_BOOTSTRAP is set, which makes a
	// stable compiler behave like a nightly one.
	Bootstrap bool

	BuildType       BuildType
	ExtraRustflags  string
	TargetDirectory string
	NoColor         bool

	// BuildStd controls whether the standard library crates are built
	// alongside the runtime. Nil means "use the per-target default":
	// enabled for wasm, disabled for riscv.
	BuildStd *bool

	Offline       bool
	Skip          bool
	WorkspaceHint string
}

// LoadBuildConfig reads every recognized variable through lookup and
// validates the result. Invalid values are configuration mistakes and
// come back as CodeInvalidArgument errors; the CLI turns those into a
// nonzero exit.
func LoadBuildConfig(lookup EnvLookup) (BuildConfig, error) {
	cfg := BuildConfig{
		CargoPath: "cargo",
		Target:    TargetKindWasm,
		BuildType: BuildTypeRelease,
	}

	if value, ok := lookup(EnvToolchain); ok {
		cfg.Toolchain = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvCargo); ok && strings.TrimSpace(value) != "" {
		cfg.CargoPath = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvTarget); ok {
		switch TargetKind(value) {
		case TargetKindWasm:
			cfg.Target = TargetKindWasm
		case TargetKindRiscv:
			cfg.Target = TargetKindRiscv
		default:
			return BuildConfig{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("the '%s' environment variable has an invalid value %q; it must be either 'wasm' or 'riscv'", EnvTarget, value))
		}
	}
	_, cfg.Bootstrap = lookup(EnvBootstrap)

	if value, ok := lookup(EnvBuildType); ok {
		switch BuildType(value) {
		case BuildTypeDebug, BuildTypeRelease, BuildTypeProduction:
			cfg.BuildType = BuildType(value)
		default:
			return BuildConfig{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("the '%s' environment variable has an invalid value %q; it must be 'debug', 'release' or 'production'", EnvBuildType, value))
		}
	}
	if value, ok := lookup(EnvRustflags); ok {
		cfg.ExtraRustflags = value
	}
	if value, ok := lookup(EnvTargetDirectory); ok && value != "" {
		if !filepath.IsAbs(value) {
			return BuildConfig{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("the '%s' environment variable must hold an absolute path, got %q", EnvTargetDirectory, value))
		}
		cfg.TargetDirectory = value
	}
	_, cfg.NoColor = lookup(EnvNoColor)

	buildStd, err := boolVariable(lookup, EnvBuildStd)
	if err != nil {
		return BuildConfig{}, err
	}
	cfg.BuildStd = buildStd

	if value, ok := lookup(EnvOffline); ok {
		cfg.Offline = strings.EqualFold(strings.TrimSpace(value), "true")
	}
	_, cfg.Skip = lookup(EnvSkipBuild)
	if value, ok := lookup(EnvWorkspaceHint); ok {
		cfg.WorkspaceHint = strings.TrimSpace(value)
	}

	return cfg, nil
}

// BuildStdEnabled resolves the tri-state BuildStd against the
// per-target default: the wasm runtime needs the standard library
// crates rebuilt with the exact feature set the executor supports.
func (c BuildConfig) BuildStdEnabled() bool {
	if c.BuildStd != nil {
		return *c.BuildStd
	}
	return c.Target == TargetKindWasm
}

// boolVariable reads a strict "1"/"0" variable. Anything else set is a
// configuration mistake, not an environmental gap, so it is fatal.
func boolVariable(lookup EnvLookup, name string) (*bool, error) {
	value, ok := lookup(name)
	if !ok {
		return nil, nil
	}
	switch value {
	case "1":
		enabled := true
		return &enabled, nil
	case "0":
		enabled := false
		return &enabled, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("the '%s' environment variable has an invalid value %q; it must be either '1' or '0'", name, value))
	}
}
