//go:build !linux

package pathinfo

import (
	"os"
	"time"
)

// extraTimes reports that access/change times are unavailable; callers fall
// back to the modification time.
func extraTimes(_ os.FileInfo) (atime, ctime time.Time, ok bool) {
	return time.Time{}, time.Time{}, false
}
