package cgroup

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	db "conflaunch/debug"
)

// Parse /proc/cgroups, whose lines are
//
//	#subsys_name hierarchy num_cgroups enabled
//
// and return the set of enabled controllers.
func parseProcCgroups(r io.Reader) (map[string]bool, error) {
	enabled := make(map[string]bool)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 4 {
			db.DPrintf(db.CGROUP_ERR, "invalid number of fields %v", parts)
			return nil, fmt.Errorf("invalid number of fields %v", parts)
		}
		n, err := strconv.Atoi(parts[3])
		if err != nil {
			db.DPrintf(db.CGROUP_ERR, "Error strconv: %v", err)
			return nil, err
		}
		enabled[parts[0]] = n == 1
	}
	if err := sc.Err(); err != nil {
		db.DPrintf(db.CGROUP_ERR, "Error scan: %v", err)
		return nil, err
	}
	return enabled, nil
}
