//go:build linux

package pathinfo

import (
	"os"
	"syscall"
	"time"
)

// extraTimes extracts access and change times from the raw stat data.
func extraTimes(info os.FileInfo) (atime, ctime time.Time, ok bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	atime = time.Unix(st.Atim.Sec, st.Atim.Nsec)
	ctime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)

	return atime, ctime, true
}
