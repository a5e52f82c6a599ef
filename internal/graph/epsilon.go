package graph

import "math"

// Epsilon is the shared tolerance for every "already normalized" decision in
// the repair pipeline. One constant everywhere keeps audit-record emission
// consistent across stages.
const Epsilon = 1e-6

// ApproxEqual reports whether a and b are equal within Epsilon.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// ApproxOne reports whether v is 1.0 within Epsilon.
func ApproxOne(v float64) bool {
	return ApproxEqual(v, 1.0)
}
