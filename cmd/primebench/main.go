package main

import (
	"context"
	"os"

	"github.com/agbru/primebench/internal/app"
	apperrors "github.com/agbru/primebench/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(0)
		}
		// Flag-parse errors were already echoed by the flag package;
		// validation errors have not been shown yet. The handler prints
		// the description and maps the error to the config exit code.
		os.Exit(apperrors.HandleBenchmarkError(err, 0, os.Stderr, nil))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
