package main

import (
	"os"

	"github.com/yndnr/tunevault-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		os.Exit(command.ReportError(os.Stderr, err))
	}
}
