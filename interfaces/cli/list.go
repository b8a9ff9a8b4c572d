package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"memoboard/application/queries"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	contentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
)

const listLongDesc string = `List memos, newest first.

The query matches title and content case-insensitively; the category
narrows to one category id.

Examples:
  memo list
  memo list -q meeting
  memo list -c work`

func newListCmd(a *app) *cobra.Command {
	var query, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List memos",
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			result, err := a.container.QueryBus.Ask(cmd.Context(), queries.FilterMemosQuery{
				Query:      query,
				CategoryID: category,
			})
			if err != nil {
				return err
			}
			memos, ok := result.(*queries.FilterMemosResult)
			if !ok {
				return fmt.Errorf("unexpected filter result %T", result)
			}
			a.printMemos(memos)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search text")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category id")
	return cmd
}

func (a *app) printMemos(result *queries.FilterMemosResult) {
	if result.Total == 0 {
		fmt.Fprintln(a.out, "No memos found.")
		return
	}

	fmt.Fprintf(a.out, "%s\n\n", headerStyle.Render(fmt.Sprintf("%d memo(s)", result.Total)))
	for _, m := range result.Memos {
		a.printMemo(m)
	}
}

func (a *app) printMemo(m queries.MemoView) {
	category := lipgloss.NewStyle().Foreground(lipgloss.Color(m.CategoryColor)).Render(m.CategoryName)
	fmt.Fprintf(a.out, "  %s  %s  %s  %s\n",
		idStyle.Render("#"+m.ID),
		titleStyle.Render(m.Title),
		category,
		dimStyle.Render(m.RelativeTime),
	)
	fmt.Fprintf(a.out, "      %s\n", contentStyle.Render(m.Content))

	var extras []string
	for _, tag := range m.Tags {
		extras = append(extras, tagStyle.Render("#"+tag))
	}
	if m.Image != "" {
		extras = append(extras, dimStyle.Render("[image]"))
	}
	if len(extras) > 0 {
		fmt.Fprintf(a.out, "      %s\n", strings.Join(extras, " "))
	}
	fmt.Fprintln(a.out)
}
