package cli

import (
	"github.com/spf13/cobra"

	"memoboard/application/commands"
)

func newRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a memo",
		Args:    cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			_, err := a.container.CommandBus.Send(cmd.Context(), commands.DeleteMemoCommand{MemoID: args[0]})
			return err
		}),
	}

	cmd.Flags().BoolVarP(&a.assumeYes, "yes", "y", false, "Delete without asking")
	return cmd
}
