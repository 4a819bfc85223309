package core

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"runtime-builder/internal/ports"
	"runtime-builder/internal/types"
)

// minimumStableVersion is the oldest stable compiler able to build the
// wasm runtime environment.
var minimumStableVersion = Version{Major: 1, Minor: 68, Patch: 0}

// CargoCommand wraps one way of invoking a cargo front-end: a program
// name plus a fixed argument prefix, enriched with its probed version
// and supported target list. It is immutable once constructed; both
// probes run in the constructor and the results are frozen.
//
// Either probe may fail. An absent result means "unknown capability",
// and each capability predicate decides how to treat that (see
// Supports).
type CargoCommand struct {
	program    string
	args       []string
	version    *Version
	rawVersion string
	targetList map[string]struct{}
}

// NewCargoCommand probes the given program invoked without a fixed
// argument prefix.
func NewCargoCommand(ctx context.Context, runner ports.CommandRunner, program string) CargoCommand {
	return NewCargoCommandWithArgs(ctx, runner, program, nil)
}

// NewCargoCommandWithArgs probes program with the given fixed leading
// arguments, e.g. ("rustup", ["run", "nightly", "cargo"]).
func NewCargoCommandWithArgs(ctx context.Context, runner ports.CommandRunner, program string, args []string) CargoCommand {
	version, raw := probeVersion(ctx, runner, program, args)
	return CargoCommand{
		program:    program,
		args:       append([]string(nil), args...),
		version:    version,
		rawVersion: raw,
		targetList: probeTargetList(ctx, runner, program, args),
	}
}

func (c CargoCommand) Program() string {
	return c.program
}

func (c CargoCommand) Args() []string {
	return append([]string(nil), c.args...)
}

// Request builds a RunRequest invoking this command with extra
// arguments appended after the fixed prefix.
func (c CargoCommand) Request(extra ...string) ports.RunRequest {
	args := append([]string(nil), c.args...)
	args = append(args, extra...)
	return ports.RunRequest{Program: c.program, Args: args}
}

// Version returns the probed version, if any probe succeeded.
func (c CargoCommand) Version() (Version, bool) {
	if c.version == nil {
		return Version{}, false
	}
	return *c.version, true
}

// RawVersion returns the first line of the `--version` output, or the
// empty string when the probe failed.
func (c CargoCommand) RawVersion() string {
	return c.rawVersion
}

// SupportsNightlyFeatures reports whether the toolchain provides
// unstable features: either it reports a nightly version, or the
// bootstrap override tells a stable compiler to behave like one.
func (c CargoCommand) SupportsNightlyFeatures(bootstrap bool) bool {
	if bootstrap {
		return true
	}
	return c.version != nil && c.version.IsNightly
}

// Supports reports whether this command can compile the given runtime
// target. The two kinds deliberately treat an absent probe result
// differently: a missing version makes the wasm check fail, and a
// missing target list makes the riscv check fail. Neither is an error.
func (c CargoCommand) Supports(target types.TargetKind, bootstrap bool) bool {
	switch target {
	case types.TargetKindRiscv:
		return c.supportsRiscv(target)
	default:
		return c.supportsWasm(bootstrap)
	}
}

// supportsWasm requires a compiler that is at least 1.68.0, or any
// nightly. The bootstrap override counts as nightly-equivalent even
// when no version could be probed at all.
func (c CargoCommand) supportsWasm(bootstrap bool) bool {
	if bootstrap {
		return true
	}
	if c.version == nil {
		return false
	}
	return c.version.AtLeast(minimumStableVersion) || c.version.IsNightly
}

// supportsRiscv requires the exact custom target triple in the probed
// target list. The triple does not exist on any upstream toolchain, so
// its presence alone proves the toolchain was built with everything the
// riscv runtime needs; no version check applies.
func (c CargoCommand) supportsRiscv(target types.TargetKind) bool {
	if c.targetList == nil {
		return false
	}
	_, ok := c.targetList[target.RustcTarget()]
	return ok
}

// probeVersion runs `program args... --version` and scrapes the
// output. Spawn failure, nonzero exit and undecodable output all
// collapse to an absent version; probing is best-effort by design.
func probeVersion(ctx context.Context, runner ports.CommandRunner, program string, args []string) (*Version, string) {
	req := ports.RunRequest{Program: program, Args: appendArgs(args, "--version")}
	out, err := runner.Output(ctx, req)
	if err != nil {
		log.Ctx(ctx).Debug().Str("program", program).Err(err).Msg("version probe failed")
		return nil, ""
	}
	if !utf8.Valid(out) {
		return nil, ""
	}
	raw := firstLine(string(out))
	version, ok := ParseVersion(raw)
	if !ok {
		return nil, raw
	}
	return &version, raw
}

// probeTargetList asks the toolchain for its supported target triples.
// The flag is unstable, so many otherwise-valid toolchains reject it;
// that simply yields an absent list. RUSTC is stripped from the child
// environment so a host toolchain variable cannot override the
// toolchain this command selects.
func probeTargetList(ctx context.Context, runner ports.CommandRunner, program string, args []string) map[string]struct{} {
	req := ports.RunRequest{
		Program:   program,
		Args:      appendArgs(args, "rustc", "-Z", "unstable-options", "--print", "target-list"),
		RemoveEnv: []string{"RUSTC"},
	}
	out, err := runner.Output(ctx, req)
	if err != nil {
		log.Ctx(ctx).Debug().Str("program", program).Err(err).Msg("target list probe failed")
		return nil
	}
	if !utf8.Valid(out) {
		return nil
	}
	targets := map[string]struct{}{}
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		targets[line] = struct{}{}
	}
	return targets
}

func appendArgs(fixed []string, extra ...string) []string {
	args := append([]string(nil), fixed...)
	return append(args, extra...)
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
