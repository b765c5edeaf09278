package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"urdf2sem/internal/app"
	"urdf2sem/internal/types"
)

func newKBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Inspect the knowledge base",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKBList(cmd.Context(), cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <map>",
		Short: "Print the individuals of a stored map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKBShow(cmd.Context(), cmd, args[0])
		},
	})
	return cmd
}

func runKBList(ctx context.Context, cmd *cobra.Command) error {
	service := newAppService()
	result, err := service.KBList(ctx, app.KBListRequest{KnowledgeBase: viper.GetString("kb")})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(result.Maps) == 0 {
		fmt.Fprintln(out, "no maps stored")
		return nil
	}
	for _, stored := range result.Maps {
		fmt.Fprintf(out, "%s robot=%s individuals=%d stored=%s source=%s\n",
			color.GreenString(stored.MapName), stored.RobotName, stored.Individuals, stored.StoredAt, stored.Source)
	}
	return nil
}

func runKBShow(ctx context.Context, cmd *cobra.Command, mapName string) error {
	service := newAppService()
	result, err := service.KBShow(ctx, app.KBShowRequest{
		KnowledgeBase: viper.GetString("kb"),
		MapName:       mapName,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, individual := range result.Individuals {
		fmt.Fprintln(out, color.GreenString(individual.ID))
		for _, statement := range individual.Statements {
			fmt.Fprintf(out, "  %s %s\n", statement.Predicate, formatObject(statement))
		}
	}
	return nil
}

func formatObject(statement types.Statement) string {
	if statement.Kind != types.StatementKindLiteral {
		return statement.Object
	}
	if statement.Datatype == types.LiteralDatatypeNone {
		return fmt.Sprintf("%q", statement.Object)
	}
	return fmt.Sprintf("%q^^xsd:%s", statement.Object, statement.Datatype)
}
