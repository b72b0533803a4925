package common

// Coalesce returns the first of candidates that is not the zero value for T.
// Used to resolve optional staging fields against defaults, for example
// sampler modes left unset by the caller.
//
// Parameters:
//   - candidates: values checked in order
//
// Returns:
//   - T: the first non-zero candidate, or T's zero value when every candidate is zero
func Coalesce[T comparable](candidates ...T) T {
	var zero T
	for _, c := range candidates {
		if c != zero {
			return c
		}
	}
	return zero
}
