package core

// machineEpsilon is half the distance between 1.0 and the next representable
// float64, the usual rounding-error unit for round-to-nearest arithmetic.
const machineEpsilon = 0x1p-53

// Gamma returns a conservative bound on the floating point error accumulated
// by a computation involving n arithmetic operations:
//
//	gamma(n) = n*eps / (1 - n*eps)
//
// It bounds |theta_n| where (1 +/- eps)^n = 1 + theta_n.
func Gamma(n int) float64 {
	ne := float64(n) * machineEpsilon
	return ne / (1 - ne)
}
