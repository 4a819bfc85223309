package core

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"runtime-builder/internal/ports"
	"runtime-builder/internal/types"
)

// Resolver selects the toolchain used to compile the runtime. Every
// probe goes through the injected CommandRunner, which keeps the
// resolution a pure function of (configuration, probe results).
type Resolver struct {
	Runner ports.CommandRunner

	// RustupProgram is the version-switching tool, "rustup" unless
	// overridden in tests.
	RustupProgram string
}

// ResolvedToolchain pairs the chosen command with the exact version
// string it reports. Downstream consumers fingerprint build-cache
// entries on the version string, not the wrapper program name.
type ResolvedToolchain struct {
	Command      CargoCommand
	RustcVersion string
}

func NewResolver(runner ports.CommandRunner) Resolver {
	return Resolver{Runner: runner, RustupProgram: "rustup"}
}

// Resolve picks a toolchain for the configured target kind, in strict
// order, short-circuiting on the first hit:
//
//  1. A pinned toolchain identifier is returned unconditionally; the
//     pin is an explicit user override and is never second-guessed here.
//     A later prerequisite check reports failure if it cannot build.
//  2. The front-end designated by the invoking build system.
//  3. The bare default front-end.
//  4. The best installed toolchain offered by the switching tool.
//
// Probe failures along the way degrade silently to "unsupported"; only
// total failure surfaces, as a distinct no-suitable-toolchain error.
func (r Resolver) Resolve(ctx context.Context, cfg types.BuildConfig) (ResolvedToolchain, error) {
	if r.Runner == nil {
		return ResolvedToolchain{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a command runner")
	}

	if cfg.Toolchain != "" {
		cmd := NewCargoCommandWithArgs(ctx, r.Runner, r.rustup(), []string{"run", cfg.Toolchain, "cargo"})
		log.Ctx(ctx).Debug().Str("toolchain", cfg.Toolchain).Msg("using pinned toolchain")
		return resolved(cmd), nil
	}

	designated := NewCargoCommand(ctx, r.Runner, cfg.CargoPath)
	if designated.Supports(cfg.Target, cfg.Bootstrap) {
		return resolved(designated), nil
	}

	fallback := NewCargoCommand(ctx, r.Runner, "cargo")
	if fallback.Supports(cfg.Target, cfg.Bootstrap) {
		return resolved(fallback), nil
	}

	if cmd, ok := r.bestInstalledToolchain(ctx, cfg); ok {
		return resolved(cmd), nil
	}

	return ResolvedToolchain{}, errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("no toolchain found that can compile for %s (target %s)", cfg.Target, cfg.Target.RustcTarget()))
}

// bestInstalledToolchain enumerates every toolchain the switching tool
// has installed, filters to the ones supporting the target, and picks
// the maximum by numeric version order. Nightly versus stable plays no
// part in the ranking; the capability check already decided that.
func (r Resolver) bestInstalledToolchain(ctx context.Context, cfg types.BuildConfig) (CargoCommand, bool) {
	type candidate struct {
		id      string
		cmd     CargoCommand
		version Version
	}

	var best *candidate
	for _, id := range r.installedToolchains(ctx) {
		cmd := NewCargoCommandWithArgs(ctx, r.Runner, r.rustup(), []string{"run", id, "cargo"})
		if !cmd.Supports(cfg.Target, cfg.Bootstrap) {
			continue
		}
		version, ok := cmd.Version()
		if !ok {
			continue
		}
		log.Ctx(ctx).Debug().Str("toolchain", id).Msg("candidate toolchain qualifies")

		entry := candidate{id: id, cmd: cmd, version: version}
		switch {
		case best == nil:
			best = &entry
		case entry.version.Compare(best.version) > 0:
			best = &entry
		case entry.version.Compare(best.version) == 0 && entry.id < best.id:
			// Equal versions are behaviorally interchangeable; break
			// the tie on the identifier so repeated runs agree.
			best = &entry
		}
	}
	if best == nil {
		return CargoCommand{}, false
	}
	return best.cmd, true
}

// installedToolchains lists the identifiers known to the switching
// tool, one per line, trimming trailing annotations like " (default)".
func (r Resolver) installedToolchains(ctx context.Context) []string {
	out, err := r.Runner.Output(ctx, ports.RunRequest{
		Program: r.rustup(),
		Args:    []string{"toolchain", "list"},
	})
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("toolchain enumeration failed")
		return nil
	}
	if !utf8.Valid(out) {
		return nil
	}

	var ids []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id, _, _ := strings.Cut(line, " ")
		ids = append(ids, id)
	}
	return ids
}

func (r Resolver) rustup() string {
	if r.RustupProgram == "" {
		return "rustup"
	}
	return r.RustupProgram
}

func resolved(cmd CargoCommand) ResolvedToolchain {
	return ResolvedToolchain{Command: cmd, RustcVersion: cmd.RawVersion()}
}
