package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotdot/internal/cli"
	"github.com/arthur-debert/dotdot/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}
}
