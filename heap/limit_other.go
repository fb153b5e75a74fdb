//go:build !linux && !darwin

package heap

// DataLimit reports no limit on platforms without getrlimit.
func DataLimit() int { return 0 }
