package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"urdf2sem/internal/app"
	"urdf2sem/internal/types"
)

type convertOptions struct {
	Output    string
	Overwrite bool
	Mode      string
	Format    string
	Watch     bool
}

func newConvertCommand() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert <urdf>",
		Short: "Convert a URDF file into a semantic map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output path (default: input name with the format extension)")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "Replace an existing output file")
	cmd.Flags().StringVar(&opts.Mode, "mode", "absolute", "Transformation mode: absolute or relative")
	cmd.Flags().StringVar(&opts.Format, "format", "owl", "Output format: owl or nt")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Convert again whenever the input changes")
	_ = viper.BindPFlag("overwrite", cmd.Flags().Lookup("overwrite"))
	return cmd
}

func runConvert(ctx context.Context, cmd *cobra.Command, input string, opts convertOptions) error {
	service := newAppService()
	req := app.ConvertRequest{
		Input:         input,
		Output:        opts.Output,
		Overwrite:     resolveBool(cmd, opts.Overwrite, "overwrite", "overwrite"),
		Mode:          types.ConvertMode(resolveString(cmd, opts.Mode, "mode", "mode")),
		Format:        types.OutputFormat(resolveString(cmd, opts.Format, "format", "format")),
		Resolve:       resolveOptions(),
		Imports:       imports(),
		NamespaceBase: viper.GetString("namespace_base"),
		KnowledgeBase: viper.GetString("kb"),
	}
	out := cmd.OutOrStdout()
	if opts.Watch {
		return service.Watch(ctx, app.WatchRequest{
			Convert:  req,
			OnResult: func(result app.ConvertResult) { printConversion(out, result) },
			OnError: func(err error) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.RedString("conversion failed:"), errorMessage(err))
			},
		})
	}
	result, err := service.Convert(ctx, req)
	if err != nil {
		return err
	}
	printConversion(out, result)
	return nil
}

func printConversion(out io.Writer, result app.ConvertResult) {
	summary := result.Summary
	fmt.Fprintf(out, "%s %s\n", color.GreenString("converted:"), result.Output)
	fmt.Fprintf(out, "  map %s (robot %s, root %s)\n", summary.MapName, summary.RobotName, summary.RootLink)
	fmt.Fprintf(out, "  links=%d joints=%d transformations=%d\n", summary.Links, summary.Joints, summary.Transformations)
	if result.Stored {
		fmt.Fprintf(out, "  stored in knowledge base\n")
	}
}
