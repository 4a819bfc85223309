package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"runtime-builder/internal/app"
)

type checkOptions struct {
	Target string
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that a capable toolchain is installed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "target", "", "Runtime target kind (wasm or riscv)")
	_ = viper.BindPFlag("target", cmd.Flags().Lookup("target"))

	return cmd
}

func runCheck(ctx context.Context, opts checkOptions) error {
	cfg, err := loadBuildConfig(opts.Target)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.Check(ctx, app.CheckRequest{Config: cfg})
	if err != nil {
		return err
	}
	fmt.Printf("ok: %s (%s)\n", result.Report.Program, result.Report.RustcVersion)
	return nil
}
