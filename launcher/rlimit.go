package launcher

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	db "conflaunch/debug"
)

// Raise the soft open-file limit to n (capped at the hard limit). The
// nodes inherit it.
func raiseNofile(n uint64) error {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return fmt.Errorf("getrlimit: %v", err)
	}
	if rl.Cur >= n {
		db.DPrintf(db.RLIMIT, "nofile %v already >= %v", humanize.Comma(int64(rl.Cur)), humanize.Comma(int64(n)))
		return nil
	}
	cur := n
	if cur > rl.Max {
		db.DPrintf(db.ALWAYS, "nofile %v capped at hard limit %v", humanize.Comma(int64(n)), humanize.Comma(int64(rl.Max)))
		cur = rl.Max
	}
	old := rl.Cur
	rl.Cur = cur
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return fmt.Errorf("setrlimit: %v", err)
	}
	db.DPrintf(db.RLIMIT, "nofile %v -> %v", humanize.Comma(int64(old)), humanize.Comma(int64(cur)))
	return nil
}
