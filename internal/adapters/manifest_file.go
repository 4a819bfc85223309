package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pelletier/go-toml/v2"

	"runtime-builder/internal/ports"
	"runtime-builder/internal/types"
)

// cargoManifest mirrors the slice of Cargo.toml the builder reads.
type cargoManifest struct {
	Package *struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Workspace *struct{} `toml:"workspace"`
}

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) LoadManifest(path string) (types.CrateManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.CrateManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to read crate manifest %s", path)).
			WithCause(err)
	}
	var manifest cargoManifest
	if err := toml.Unmarshal(raw, &manifest); err != nil {
		return types.CrateManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse crate manifest %s", path)).
			WithCause(err)
	}
	result := types.CrateManifest{
		IsWorkspace: manifest.Workspace != nil,
		Path:        path,
	}
	if manifest.Package != nil {
		result.Name = manifest.Package.Name
	}
	if result.Name == "" && !result.IsWorkspace {
		return types.CrateManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("crate manifest %s declares neither a package nor a workspace", path))
	}
	return result, nil
}

// FindWorkspaceRoot walks up from crateDir until it finds a manifest
// declaring a workspace. When the outer build changed the target
// directory the hint names the workspace directly instead.
func (a ManifestFileAdapter) FindWorkspaceRoot(crateDir string, hint string) (string, error) {
	if hint != "" {
		if _, err := a.LoadManifest(filepath.Join(hint, "Cargo.toml")); err != nil {
			return "", err
		}
		return hint, nil
	}

	dir, err := filepath.Abs(crateDir)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid crate directory").
			WithCause(err)
	}
	for {
		manifestPath := filepath.Join(dir, "Cargo.toml")
		if _, statErr := os.Stat(manifestPath); statErr == nil {
			manifest, err := a.LoadManifest(manifestPath)
			if err == nil && manifest.IsWorkspace {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// A standalone crate is its own workspace.
	if _, err := os.Stat(filepath.Join(crateDir, "Cargo.toml")); err == nil {
		return crateDir, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("no Cargo.toml found walking up from %s", crateDir))
}

var _ ports.CrateManifestPort = ManifestFileAdapter{}
