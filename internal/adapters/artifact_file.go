package adapters

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"runtime-builder/internal/ports"
)

type ArtifactFileAdapter struct{}

func NewArtifactFileAdapter() ArtifactFileAdapter {
	return ArtifactFileAdapter{}
}

// CopyIfChanged copies src to dst only when the contents differ. The
// main build watches the destination, so rewriting an identical binary
// would trigger a needless rebuild cascade.
func (a ArtifactFileAdapter) CopyIfChanged(src string, dst string) error {
	srcData, err := os.ReadFile(src)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to read artifact %s", src)).
			WithCause(err)
	}
	dstData, err := os.ReadFile(dst)
	if err == nil && bytes.Equal(srcData, dstData) {
		return nil
	}
	if err := os.WriteFile(dst, srcData, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to copy artifact to %s", dst)).
			WithCause(err)
	}
	return nil
}

func (a ArtifactFileAdapter) WriteIfChanged(path string, content []byte) error {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return nil
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", path)).
			WithCause(err)
	}
	return nil
}

func (a ArtifactFileAdapter) Digest(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to open %s for hashing", path)).
			WithCause(err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to hash %s", path)).
			WithCause(err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

var _ ports.ArtifactPort = ArtifactFileAdapter{}
