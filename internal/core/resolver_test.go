package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runtime-builder/internal/types"
)

func wasmConfig() types.BuildConfig {
	return types.BuildConfig{CargoPath: "cargo", Target: types.TargetKindWasm, BuildType: types.BuildTypeRelease}
}

// ---------------------------------------------------------------------------
// Step 1: pinned toolchain
// ---------------------------------------------------------------------------

func TestResolvePinnedToolchainIsNeverSecondGuessed(t *testing.T) {
	// The pinned identifier wins even though none of its probes
	// succeed; a later prerequisite check owns the failure report.
	runner := newFakeRunner()
	cfg := wasmConfig()
	cfg.Toolchain = "nightly-2023-03-29"

	result, err := NewResolver(runner).Resolve(t.Context(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "rustup", result.Command.Program())
	assert.Equal(t, []string{"run", "nightly-2023-03-29", "cargo"}, result.Command.Args())
	assert.Empty(t, result.RustcVersion)
	assert.False(t, runner.called("cargo --version"))
	assert.False(t, runner.called("rustup toolchain list"))
}

// ---------------------------------------------------------------------------
// Steps 2-3: designated and default front-ends
// ---------------------------------------------------------------------------

func TestResolveDesignatedCargo(t *testing.T) {
	runner := newFakeRunner()
	runner.stubToolchain("/opt/cargo/bin/cargo", "cargo 1.72.1 (103a7ff2e 2023-08-15)")
	cfg := wasmConfig()
	cfg.CargoPath = "/opt/cargo/bin/cargo"

	result, err := NewResolver(runner).Resolve(t.Context(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "/opt/cargo/bin/cargo", result.Command.Program())
	assert.Equal(t, "cargo 1.72.1 (103a7ff2e 2023-08-15)", result.RustcVersion)
	assert.False(t, runner.called("rustup toolchain list"))
}

func TestResolveFallsBackToDefaultCargo(t *testing.T) {
	runner := newFakeRunner()
	runner.stubToolchain("/opt/old/cargo", "cargo 1.60.0")
	runner.stubToolchain("cargo", "cargo 1.70.0")
	cfg := wasmConfig()
	cfg.CargoPath = "/opt/old/cargo"

	result, err := NewResolver(runner).Resolve(t.Context(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "cargo", result.Command.Program())
	assert.Empty(t, result.Command.Args())
}

// ---------------------------------------------------------------------------
// Step 4: rustup enumeration
// ---------------------------------------------------------------------------

func TestResolvePicksNewestInstalledToolchain(t *testing.T) {
	// Ambient cargo is 1.65.0 and does not qualify; among the
	// installed toolchains the numerically greatest qualifying version
	// wins, nightly flag notwithstanding.
	runner := newFakeRunner()
	runner.stubToolchain("cargo", "cargo 1.65.0 (4bc8f24d3 2022-10-20)")
	runner.stub("rustup toolchain list", "1.66.0-x86_64-unknown-linux-gnu (default)\n1.70.0-nightly-x86_64-unknown-linux-gnu\n1.68.0-x86_64-unknown-linux-gnu\n")
	runner.stubToolchain("rustup run 1.66.0-x86_64-unknown-linux-gnu cargo", "cargo 1.66.0")
	runner.stubToolchain("rustup run 1.70.0-nightly-x86_64-unknown-linux-gnu cargo", "cargo 1.70.0-nightly (5b377cece 2023-03-31)")
	runner.stubToolchain("rustup run 1.68.0-x86_64-unknown-linux-gnu cargo", "cargo 1.68.0")

	result, err := NewResolver(runner).Resolve(t.Context(), wasmConfig())
	require.NoError(t, err)

	assert.Equal(t, "rustup", result.Command.Program())
	assert.Equal(t, []string{"run", "1.70.0-nightly-x86_64-unknown-linux-gnu", "cargo"}, result.Command.Args())
	assert.Equal(t, "cargo 1.70.0-nightly (5b377cece 2023-03-31)", result.RustcVersion)
}

func TestResolveSkipsUnqualifiedInstalledToolchains(t *testing.T) {
	runner := newFakeRunner()
	runner.stub("rustup toolchain list", "1.60.0\nbroken\n1.69.0")
	runner.stubToolchain("rustup run 1.60.0 cargo", "cargo 1.60.0")
	// "broken" has no stubs at all: both probes fail and it is skipped.
	runner.stubToolchain("rustup run 1.69.0 cargo", "cargo 1.69.0")

	result, err := NewResolver(runner).Resolve(t.Context(), wasmConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "1.69.0", "cargo"}, result.Command.Args())
}

func TestResolveEqualVersionsTieBreakOnIdentifier(t *testing.T) {
	runner := newFakeRunner()
	runner.stub("rustup toolchain list", "zz-custom\naa-custom")
	runner.stubToolchain("rustup run zz-custom cargo", "cargo 1.70.0")
	runner.stubToolchain("rustup run aa-custom cargo", "cargo 1.70.0")

	result, err := NewResolver(runner).Resolve(t.Context(), wasmConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "aa-custom", "cargo"}, result.Command.Args())
}

func TestResolveRiscvRequiresTargetList(t *testing.T) {
	runner := newFakeRunner()
	runner.stubToolchain("cargo", "cargo 1.75.0")
	runner.stub("rustup toolchain list", "riscv-custom\n1.75.0")
	runner.stubToolchain("rustup run riscv-custom cargo", "cargo 1.74.0-nightly", riscvTriple, "wasm32-unknown-unknown")
	runner.stubToolchain("rustup run 1.75.0 cargo", "cargo 1.75.0", "wasm32-unknown-unknown")

	cfg := wasmConfig()
	cfg.Target = types.TargetKindRiscv

	result, err := NewResolver(runner).Resolve(t.Context(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "riscv-custom", "cargo"}, result.Command.Args())
}

// ---------------------------------------------------------------------------
// Step 5: nothing qualifies
// ---------------------------------------------------------------------------

func TestResolveNoSuitableToolchain(t *testing.T) {
	runner := newFakeRunner()
	runner.stubToolchain("cargo", "cargo 1.65.0")

	_, err := NewResolver(runner).Resolve(t.Context(), wasmConfig())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "wasm32-unknown-unknown")
}

// ---------------------------------------------------------------------------
// Idempotence
// ---------------------------------------------------------------------------

func TestResolveIsIdempotent(t *testing.T) {
	stub := func() *fakeRunner {
		runner := newFakeRunner()
		runner.stub("rustup toolchain list", "1.70.0\n1.68.0")
		runner.stubToolchain("rustup run 1.70.0 cargo", "cargo 1.70.0")
		runner.stubToolchain("rustup run 1.68.0 cargo", "cargo 1.68.0")
		return runner
	}

	first, err := NewResolver(stub()).Resolve(t.Context(), wasmConfig())
	require.NoError(t, err)
	second, err := NewResolver(stub()).Resolve(t.Context(), wasmConfig())
	require.NoError(t, err)

	if diff := cmp.Diff(first.RustcVersion, second.RustcVersion); diff != "" {
		t.Fatalf("unexpected version drift (-want +got):\n%s", diff)
	}
	assert.Equal(t, first.Command.Program(), second.Command.Program())
	assert.Equal(t, first.Command.Args(), second.Command.Args())
}
