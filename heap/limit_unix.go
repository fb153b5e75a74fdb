//go:build linux || darwin

package heap

import (
	"math"

	"golang.org/x/sys/unix"
)

// DataLimit returns the soft RLIMIT_DATA of the process in bytes, or 0 when
// the limit is infinite or cannot be read.
func DataLimit() int {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_DATA, &rl); err != nil {
		return 0
	}
	cur := uint64(rl.Cur)
	if cur >= math.MaxInt64 || cur > math.MaxInt {
		return 0
	}
	return int(cur)
}
