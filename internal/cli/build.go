package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"runtime-builder/internal/app"
)

type buildOptions struct {
	Target    string
	CrateDir  string
	OutputDir string
}

func newBuildCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the runtime crate and collect the artifact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "target", "", "Runtime target kind (wasm or riscv)")
	cmd.Flags().StringVar(&opts.CrateDir, "crate-dir", ".", "Runtime crate directory")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")

	_ = viper.BindPFlag("target", cmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("crate_dir", cmd.Flags().Lookup("crate-dir"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runBuild(ctx context.Context, opts buildOptions) error {
	cfg, err := loadBuildConfig(opts.Target)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.Build(ctx, app.BuildRequest{
		Config:    cfg,
		CrateDir:  opts.CrateDir,
		OutputDir: opts.OutputDir,
	})
	if err != nil {
		return err
	}
	if result.Skipped {
		fmt.Println("skipped")
		return nil
	}
	fmt.Printf("built: %s (sha256 %s)\n", result.ArtifactPath, result.Digest)
	return nil
}
