// Package cli implements the memo command line board.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"memoboard/application/commands"
	"memoboard/infrastructure/config"
	"memoboard/infrastructure/di"
)

// ContainerFactory builds the dependency container for one invocation
type ContainerFactory func(ctx context.Context, frontend di.Frontend) (*di.Container, error)

// DefaultContainerFactory wires the container from the environment
func DefaultContainerFactory(ctx context.Context, frontend di.Frontend) (*di.Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return di.InitializeContainer(ctx, cfg, frontend)
}

type app struct {
	in      *bufio.Reader
	out     io.Writer
	factory ContainerFactory

	assumeYes bool
	container *di.Container
	mu        sync.Mutex
}

const rootLongDesc string = `A board of short memos.

The working set is loaded from the configured memo store
(STORE_BACKEND=memory|rest|dynamodb) on every invocation.

Examples:
  memo list
  memo list -q groceries -c personal
  memo add --title "Groceries" --content "milk, eggs" --category personal --tags "home, errands"
  memo rm 42
  memo categories`

// NewRootCmd assembles the memo command tree
func NewRootCmd(in io.Reader, out io.Writer, factory ContainerFactory) *cobra.Command {
	a := &app{
		in:      bufio.NewReader(in),
		out:     out,
		factory: factory,
	}

	cmd := &cobra.Command{
		Use:           "memo",
		Short:         "Manage memos from the terminal",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newCategoriesCmd(a),
	)
	return cmd
}

// open wires the container and loads the working set. A failed load has
// already been reported through the notification line.
func (a *app) open(ctx context.Context) error {
	container, err := a.factory(ctx, di.Frontend{Confirmer: a, Output: a.out})
	if err != nil {
		return err
	}
	a.container = container

	if _, err := container.CommandBus.Send(ctx, commands.LoadMemosCommand{}); err != nil {
		a.close()
		return err
	}
	return nil
}

func (a *app) close() {
	if a.container != nil {
		a.container.Close()
		a.container = nil
	}
}

// run releases the container once the subcommand finishes, whether or not
// it failed
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.close()
		return fn(cmd, args)
	}
}

// Confirm implements ports.Confirmer with a y/N prompt
func (a *app) Confirm(prompt string) bool {
	if a.assumeYes {
		return true
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(a.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
