package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"runtime-builder/internal/app"
)

type resolveOptions struct {
	Target    string
	OutputDir string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the toolchain for the requested runtime target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "target", "", "Runtime target kind (wasm or riscv)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory for the toolchain report (optional)")

	_ = viper.BindPFlag("target", cmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runResolve(ctx context.Context, opts resolveOptions) error {
	cfg, err := loadBuildConfig(opts.Target)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		Config:    cfg,
		OutputDir: opts.OutputDir,
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved: %s %v (%s)\n", result.Report.Program, result.Report.Args, result.Report.RustcVersion)
	if result.ReportPath != "" {
		fmt.Printf("report: %s\n", result.ReportPath)
	}
	return nil
}
