package engine

import "golang.org/x/exp/constraints"

func max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}
