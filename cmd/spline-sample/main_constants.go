package main

// Default command-line flag values
const (
	defaultColumns   = "X,Y,Z"
	defaultTime      = "T"
	defaultScale     = 1.0
	defaultSamples   = 200
	defaultDelimiter = "auto"
)

// Output
const (
	outputSuffix  = ".frames.csv"
	stdoutPath    = "-"
	outputDirPerm = 0o755
)

// CLI argument counts
const (
	minRequiredArgs = 1
)
