package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"memoboard/application/commands"
	"memoboard/application/queries"
	"memoboard/domain/core/entities"
)

const addLongDesc string = `Add a memo.

Title, content and category are required. Tags are comma separated.
An image file is attached inline; it must be an image no larger than
MAX_IMAGE_BYTES.

Examples:
  memo add --title "Standup" --content "notes" --category work
  memo add --title "Trip" --content "beach" --category personal --image photo.png`

func newAddCmd(a *app) *cobra.Command {
	var cmdArgs commands.CreateMemoCommand
	var imagePath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a memo",
		Long:  addLongDesc,
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			if imagePath != "" {
				dataURI, err := a.readImage(imagePath)
				if err != nil {
					return err
				}
				cmdArgs.Image = dataURI
			}

			result, err := a.container.CommandBus.Send(cmd.Context(), cmdArgs)
			if err != nil {
				return err
			}

			memo, ok := result.(entities.Memo)
			if !ok {
				return fmt.Errorf("unexpected create result %T", result)
			}
			a.printMemo(queries.NewMemoView(memo, a.container.Engine.ResolveCategory(memo.Category()), memo.CreatedAt()))
			return nil
		}),
	}

	cmd.Flags().StringVar(&cmdArgs.Title, "title", "", "Memo title")
	cmd.Flags().StringVar(&cmdArgs.Content, "content", "", "Memo content")
	cmd.Flags().StringVarP(&cmdArgs.Category, "category", "c", "", "Category id")
	cmd.Flags().StringVar(&cmdArgs.TagString, "tags", "", "Comma separated tags")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to an image file")
	return cmd
}

func (a *app) readImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	image, err := a.container.ImageIntake.AcceptReader(f)
	if err != nil {
		return "", err
	}
	return image.DataURI(), nil
}
