package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"runtime-builder/internal/ports"
)

func TestChildEnvRemovesRequestedKeys(t *testing.T) {
	base := []string{"RUSTC=/usr/bin/rustc", "PATH=/usr/bin", "HOME=/root"}
	env := childEnv(base, ports.RunRequest{RemoveEnv: []string{"RUSTC"}})

	assert.NotContains(t, env, "RUSTC=/usr/bin/rustc")
	assert.Contains(t, env, "PATH=/usr/bin")
	assert.Contains(t, env, "HOME=/root")
}

func TestChildEnvAppendsExtra(t *testing.T) {
	base := []string{"PATH=/usr/bin"}
	env := childEnv(base, ports.RunRequest{ExtraEnv: []string{"RUSTC_BOOTSTRAP=1"}})

	assert.Equal(t, []string{"PATH=/usr/bin", "RUSTC_BOOTSTRAP=1"}, env)
}

func TestChildEnvOnlyExactKeyMatches(t *testing.T) {
	base := []string{"RUSTC_WRAPPER=sccache", "RUSTC=rustc"}
	env := childEnv(base, ports.RunRequest{RemoveEnv: []string{"RUSTC"}})

	assert.Contains(t, env, "RUSTC_WRAPPER=sccache")
	assert.NotContains(t, env, "RUSTC=rustc")
}
