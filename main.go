package main

import (
	"os"

	"github.com/logicdraft/logicdraft/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
