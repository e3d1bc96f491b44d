package consts

const (
	SourceImpedance = 50.0 // Default source impedance RS (ohm)
	LoadImpedance   = 50.0 // Default load impedance RL (ohm)

	SweepStart = 1.0 // Default linear sweep start (Hz)
	SweepEnd   = 1e6 // Default linear sweep end (Hz)
	SweepCount = 10  // Default number of sweep points

	CheckTolerance = 1e-6 // Relative tolerance of the nodal cross-check
)
