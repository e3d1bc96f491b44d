package matrix

// DeviceMatrix is the stamping surface a device writes its admittances into.
// Indices are 1-based node numbers; 0 is ground and never stamped.
type DeviceMatrix interface {
	AddComplexElement(i, j int, real, imag float64)
	AddComplexRHS(i int, real, imag float64)
}
