package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"urdf2sem/internal/app"
)

type poseOptions struct {
	RelativeTo string
}

func newPoseCommand() *cobra.Command {
	opts := poseOptions{}
	cmd := &cobra.Command{
		Use:   "pose <urdf> <frame>",
		Short: "Print the transform of a link or joint",
		Long: "Print the transform of a link or joint relative to the root link or to\n" +
			"another frame. Frames may be written as link:<name> or joint:<name>.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPose(cmd.Context(), cmd, args[0], args[1], opts)
		},
	}
	cmd.Flags().StringVar(&opts.RelativeTo, "relative-to", "", "Reference frame (default: root link)")
	return cmd
}

func runPose(ctx context.Context, cmd *cobra.Command, input string, target string, opts poseOptions) error {
	service := newAppService()
	result, err := service.Pose(ctx, app.PoseRequest{
		Input:      input,
		Target:     target,
		RelativeTo: opts.RelativeTo,
	})
	if err != nil {
		return err
	}
	t, q := result.Transform.Translation, result.Transform.Quaternion
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s in %s\n", color.GreenString("pose:"), result.Target, result.RelativeTo)
	fmt.Fprintf(out, "  translation: %f %f %f\n", t[0], t[1], t[2])
	fmt.Fprintf(out, "  quaternion:  %f %f %f %f\n", q[0], q[1], q[2], q[3])
	return nil
}
