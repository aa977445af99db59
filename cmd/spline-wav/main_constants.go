package main

// Default command-line flag values
const (
	defaultColumns   = "X,Y,Z"
	defaultTime      = "T"
	defaultScale     = 1.0
	defaultDelimiter = "auto"
	defaultSamples   = 480
	defaultLoops     = 100
	defaultRateKHz   = 48.0
)

// Conversion constants
const (
	kHzToHz = 1000
)

// CLI argument counts
const (
	minRequiredArgs   = 2 // input.csv output.wav
	sceneRequiredArgs = 1 // output.wav
)
