package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/application/handlers"
)

// errReportsFailed marks files whose model could not be opened.
var errReportsFailed = errors.New("one or more files could not be opened")

type psetsFlags struct {
	directory     string
	outputDir     string
	recursive     bool
	maxProperties int
}

func newPsetsCmd() *cobra.Command {
	var flags psetsFlags

	cmd := &cobra.Command{
		Use:   "psets",
		Short: "Write property-set inventory reports for a directory of IFC files",
		Long: `Collects property-set usage statistics for each IFC file and writes a
<name>_PROPERTYSETS.txt report into the output directory.

Examples:
  skysnap psets
  skysnap psets --directory ./models --output-dir ./reports --max-properties 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPsets(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.directory, "directory", ".", "Directory holding IFC files")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", ".", "Directory the reports are written into")
	cmd.Flags().BoolVar(&flags.recursive, "recursive", false, "Search for IFC files recursively")
	cmd.Flags().IntVar(&flags.maxProperties, "max-properties", 0, "Maximum property names printed per set (default from config)")

	return cmd
}

func runPsets(cmd *cobra.Command, flags psetsFlags) error {
	return withDeps(func(deps *Deps) error {
		opts := handlers.PsetsOptions{
			Directory:     flags.directory,
			OutputDir:     flags.outputDir,
			Recursive:     flags.recursive,
			MaxProperties: flags.maxProperties,
		}
		if !cmd.Flags().Changed("max-properties") {
			opts.MaxProperties = deps.Config.Reports.MaxProperties
		}

		summary, err := deps.PsetsHandler.HandlePsets(opts)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("File", "Status", "Property Sets", "Report")
		for _, file := range summary.Files {
			status := "OK"
			if !file.OK {
				status = "FAIL"
			}
			table.Append(filepath.Base(file.Path), status,
				fmt.Sprintf("%d", file.UniqueSets), file.ReportPath)
		}
		if err := table.Render(); err != nil {
			return err
		}

		fmt.Printf("\nIFC files: %d\n", len(summary.Files))
		fmt.Printf("Reports OK: %d\n", len(summary.Files)-summary.Failed)
		fmt.Printf("Reports with open failures: %d\n", summary.Failed)

		if summary.Failed > 0 {
			return errReportsFailed
		}
		return nil
	})
}
