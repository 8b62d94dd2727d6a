package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/application/handlers"
)

// errFilesInvalid makes a validation run with error-level findings exit
// non-zero without being mistaken for a precondition failure.
var errFilesInvalid = errors.New("one or more files failed validation")

type validateFlags struct {
	directory string
	recursive bool
	maxIssues int
}

func newValidateCmd() *cobra.Command {
	var flags validateFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every IFC file in a directory and write reports",
		Long: `Opens each IFC file in the directory, checks it for schema conformance
and writes a <name>_VERIFICATION.txt report next to it.

Examples:
  skysnap validate
  skysnap validate --directory ./models --recursive --max-issues 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.directory, "directory", ".", "Directory holding IFC files")
	cmd.Flags().BoolVar(&flags.recursive, "recursive", false, "Search for IFC files recursively")
	cmd.Flags().IntVar(&flags.maxIssues, "max-issues", 0, "Maximum findings printed per file (default from config)")

	return cmd
}

func runValidate(cmd *cobra.Command, flags validateFlags) error {
	return withDeps(func(deps *Deps) error {
		opts := handlers.ValidateOptions{
			Directory: flags.directory,
			Recursive: flags.recursive,
			MaxIssues: flags.maxIssues,
		}
		if !cmd.Flags().Changed("max-issues") {
			opts.MaxIssues = deps.Config.Reports.MaxIssues
		}

		summary, err := deps.ValidateHandler.HandleValidate(opts)
		if err != nil {
			return err
		}

		fmt.Println("\n=== SUMMARY ===")
		fmt.Printf("Files checked: %d\n", len(summary.Files))
		fmt.Printf("Files invalid: %d\n", summary.Invalid)
		fmt.Printf("Files valid: %d\n", len(summary.Files)-summary.Invalid)
		fmt.Println("Reports:")
		for _, file := range summary.Files {
			fmt.Printf("- %s\n", file.ReportPath)
		}

		if summary.Invalid > 0 {
			return errFilesInvalid
		}
		return nil
	})
}
