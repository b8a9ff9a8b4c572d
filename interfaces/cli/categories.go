package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"memoboard/application/queries"
)

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with memo counts",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			result, err := a.container.QueryBus.Ask(cmd.Context(), queries.ListCategoriesQuery{})
			if err != nil {
				return err
			}

			list, ok := result.(*queries.ListCategoriesResult)
			if !ok {
				return fmt.Errorf("unexpected categories result %T", result)
			}
			categories := list.Categories
			width := 0
			for _, c := range categories {
				width = max(width, len(c.ID))
			}
			for _, c := range categories {
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
				fmt.Fprintf(a.out, "%s %-*s  %s  %s\n", swatch, width, c.ID, c.Name, dimStyle.Render(fmt.Sprintf("(%d)", c.Count)))
			}
			return nil
		}),
	}
}
