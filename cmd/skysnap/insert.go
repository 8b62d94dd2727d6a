package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/application/handlers"
)

type insertFlags struct {
	segment  string
	antenna  string
	output   string
	height   float64
	azimuth  float64
	legIndex int
}

func newInsertCmd() *cobra.Command {
	var flags insertFlags

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert an antenna from a donor model onto a segment column",
		Long: `Copies the antenna out of the donor IFC file and mounts it on a segment
column at the requested elevation and azimuth. The column is picked among
the candidates whose axis crosses the elevation plane.

Examples:
  skysnap insert
  skysnap insert --height-m 12.5 --azimuth-deg 270
  skysnap insert --segment-ifc TOWER.ifc --antenna-ifc DISH.ifc --leg-index 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.segment, "segment-ifc", DefaultSegmentFile, "Target segment IFC file")
	cmd.Flags().StringVar(&flags.antenna, "antenna-ifc", DefaultAntennaFile, "Donor IFC file holding the antenna")
	cmd.Flags().StringVar(&flags.output, "output-ifc", "", "Output IFC file (default from config)")
	cmd.Flags().Float64Var(&flags.height, "height-m", 0, "Mounting elevation in metres (default from config)")
	cmd.Flags().Float64Var(&flags.azimuth, "azimuth-deg", 0, "Azimuth CCW from the +X axis in degrees (default from config)")
	cmd.Flags().IntVar(&flags.legIndex, "leg-index", 0, "Zero-based leg pick among elevation candidates")

	return cmd
}

func runInsert(cmd *cobra.Command, flags insertFlags) error {
	return withDeps(func(deps *Deps) error {
		opts := handlers.InsertOptions{
			SegmentPath:  flags.segment,
			AntennaPath:  flags.antenna,
			OutputPath:   flags.output,
			HeightMeters: flags.height,
			AzimuthDeg:   flags.azimuth,
			LegIndex:     flags.legIndex,
		}
		if opts.OutputPath == "" {
			opts.OutputPath = deps.Config.Insert.Output
		}
		if !cmd.Flags().Changed("height-m") {
			opts.HeightMeters = deps.Config.Insert.HeightMeters
		}
		if !cmd.Flags().Changed("azimuth-deg") {
			opts.AzimuthDeg = deps.Config.Insert.AzimuthDeg
		}

		result, err := deps.InsertHandler.HandleInsert(opts)
		if err != nil {
			return err
		}

		fmt.Println("Insertion complete.")
		fmt.Printf("Output file: %s\n", result.OutputPath)
		fmt.Printf("Leg (IfcColumn): #%d | %s\n", result.ColumnHandle, result.ColumnName)
		fmt.Printf("Insertion point [model units]: (%.3f, %.3f, %.3f)\n",
			result.InsertionPoint.X, result.InsertionPoint.Y, result.InsertionPoint.Z)
		fmt.Printf("Target elevation: %.3f m\n", result.HeightMeters)
		fmt.Printf("Azimuth: %.3f deg (CCW from +X)\n", result.AzimuthDeg)
		return nil
	})
}
