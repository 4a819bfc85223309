package ports

import "runtime-builder/internal/types"

type ReportWriterPort interface {
	WriteToolchainReport(report types.ToolchainReport) (string, error)
	WriteBuildReport(report types.BuildReport) (string, error)
}

type ArtifactPort interface {
	// CopyIfChanged copies src to dst only when the contents differ,
	// so downstream file watchers do not fire on identical rebuilds.
	CopyIfChanged(src string, dst string) error

	// WriteIfChanged writes content to path only when it differs.
	WriteIfChanged(path string, content []byte) error

	// Digest returns the hex sha256 of the file at path.
	Digest(path string) (string, error)
}
