package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"urdf2sem/internal/app"
)

type batchOptions struct {
	Manifest string
	Workers  int
}

func newBatchCommand() *cobra.Command {
	opts := batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert every robot listed in a batch manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Batch manifest (yaml)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Parallel conversions (default: number of CPUs)")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	return cmd
}

func runBatch(ctx context.Context, cmd *cobra.Command, opts batchOptions) error {
	service := newAppService()
	result, err := service.Batch(ctx, app.BatchRequest{
		Manifest:      resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		Workers:       resolveInt(cmd, opts.Workers, "workers", "workers"),
		Resolve:       resolveOptions(),
		Imports:       imports(),
		NamespaceBase: viper.GetString("namespace_base"),
		KnowledgeBase: viper.GetString("kb"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, converted := range result.Results {
		printConversion(out, converted)
	}
	fmt.Fprintf(out, "%s %d robots\n", color.GreenString("batch complete:"), len(result.Results))
	return nil
}
