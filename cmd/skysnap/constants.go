package main

// Default input file names for the insert command.
const (
	DefaultSegmentFile = "SEGMENT.ifc"
	DefaultAntennaFile = "ANTENA.ifc"
)
