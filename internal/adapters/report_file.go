package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"runtime-builder/internal/ports"
	"runtime-builder/internal/types"
)

type ReportFileAdapter struct {
	Dir string
}

func NewReportFileAdapter(dir string) ReportFileAdapter {
	return ReportFileAdapter{Dir: dir}
}

func (a ReportFileAdapter) WriteToolchainReport(report types.ToolchainReport) (string, error) {
	return a.write("toolchain.yaml", report)
}

func (a ReportFileAdapter) WriteBuildReport(report types.BuildReport) (string, error) {
	return a.write("build-report.yaml", report)
}

func (a ReportFileAdapter) write(name string, value any) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o750); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	raw, err := yaml.Marshal(value)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode report").
			WithCause(err)
	}
	path := filepath.Join(a.Dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report").
			WithCause(err)
	}
	return path, nil
}

var _ ports.ReportWriterPort = ReportFileAdapter{}
