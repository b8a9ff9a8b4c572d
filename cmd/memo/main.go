package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"memoboard/interfaces/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCmd(os.Stdin, os.Stdout, cli.DefaultContainerFactory)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
