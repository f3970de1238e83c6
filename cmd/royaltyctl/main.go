package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmdCtx := newCommandContext()
	cmd := newRootCommand(cmdCtx)
	err := cmd.Execute()
	cmdCtx.close()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
