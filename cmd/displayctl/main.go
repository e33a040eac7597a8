package main

import (
	"fmt"
	"os"

	"github.com/fzft/go-numeric-display/cmd"
)

var (
	gitSHA1  = "unknown"
	gitDirty = "unknown"
)

func main() {
	cli := cmd.NewDisplayCli(os.Stdin, os.Stdout, os.Stderr)
	if err := cli.Run(os.Args[1:], gitSHA1, gitDirty); err != nil {
		fmt.Fprintf(os.Stderr, "(error) %v\n", err)
		os.Exit(1)
	}
}
