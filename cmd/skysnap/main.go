// Package main provides the entry point for the skysnap CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/application/handlers"
)

var version = "0.1.0-dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if handlers.IsPrecondition(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:           "skysnap",
		Short:         "Places antenna equipment into IFC tower-segment models",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newInsertCmd(),
		newValidateCmd(),
		newPsetsCmd(),
	)

	return rootCmd.Execute()
}
