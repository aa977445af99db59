package spline

// Default column selection
const (
	DefaultColumnX    = "X"
	DefaultColumnY    = "Y"
	DefaultColumnZ    = "Z"
	DefaultTimeColumn = "T"
	DefaultTimeScale  = 1.0
)

// maxAxes is the number of spatial columns a curve can select.
const maxAxes = 3
