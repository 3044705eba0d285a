package consts

const (
	RootScope   = "root"    // Scope every element starts in
	DefaultName = "Netlist" // Circuit name when none is given
	ScopeSep    = "/"       // Location path separator
)

// Waveform keywords that turn an independent source into a compound specification.
var Waveforms = []string{"dc", "ac", "pulse", "exp", "pwl", "sin", "sffm", "am", "trnoise", "trrandom"}
