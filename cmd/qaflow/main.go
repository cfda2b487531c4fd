package main

import (
	"os"

	"github.com/wingspanai/qaflow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
