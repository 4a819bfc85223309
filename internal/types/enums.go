package types

// TargetKind selects which specialized instruction set the runtime is
// compiled for.
type TargetKind string

const (
	TargetKindWasm  TargetKind = "wasm"
	TargetKindRiscv TargetKind = "riscv"
)

// RustcTarget returns the compiler target triple for the kind.
func (k TargetKind) RustcTarget() string {
	switch k {
	case TargetKindRiscv:
		return "riscv32ema-unknown-none-elf"
	default:
		return "wasm32-unknown-unknown"
	}
}

// BuildSubdirectory returns the per-kind build directory. The
// directories are kept separate so that switching between targets does
// not invalidate the other target's incremental build cache.
func (k TargetKind) BuildSubdirectory() string {
	switch k {
	case TargetKindRiscv:
		return "rbuild"
	default:
		return "wbuild"
	}
}

type BuildType string

const (
	BuildTypeDebug      BuildType = "debug"
	BuildTypeRelease    BuildType = "release"
	BuildTypeProduction BuildType = "production"
)

// CargoProfileDirectory returns the directory cargo places artifacts in
// for the build type.
func (b BuildType) CargoProfileDirectory() string {
	switch b {
	case BuildTypeDebug:
		return "debug"
	case BuildTypeProduction:
		return "production"
	default:
		return "release"
	}
}
