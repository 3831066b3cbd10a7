// Package cgroup names the per-node resource-control groups and wraps
// commands so they run inside them via cgexec.
package cgroup

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	db "conflaunch/debug"
)

const (
	CGROUP_ROOT  = "/sys/fs/cgroup"
	PROC_CGROUPS = "/proc/cgroups"
)

// Name of node i's group: prefix followed by i+1 (e.g., limit1 for
// node 0), matching the classes the throttling script sets up.
func Name(prefix string, i int) string {
	return prefix + strconv.Itoa(i+1)
}

// Exec wraps argv so that it runs in group under the given
// comma-separated controllers.
func Exec(cgexec, controllers, group string, argv []string) []string {
	return append([]string{cgexec, "-g", controllers + ":" + group}, argv...)
}

// IsV2 reports whether root is a cgroup2 (unified) mount.
func IsV2(root string) (bool, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(root, &st); err != nil {
		return false, fmt.Errorf("statfs %v: %v", root, err)
	}
	return int64(st.Type) == unix.CGROUP2_SUPER_MAGIC, nil
}

// CheckControllers verifies that each of the comma-separated
// controllers is enabled in the running kernel.
func CheckControllers(controllers string) error {
	f, err := os.Open(PROC_CGROUPS)
	if err != nil {
		db.DPrintf(db.CGROUP_ERR, "Error open %v: %v", PROC_CGROUPS, err)
		return err
	}
	defer f.Close()
	enabled, err := parseProcCgroups(f)
	if err != nil {
		return err
	}
	for _, c := range strings.Split(controllers, ",") {
		if !enabled[c] {
			return fmt.Errorf("cgroup controller %q not enabled", c)
		}
	}
	return nil
}

// Check logs what the host's cgroup setup looks like; cgexec reports
// the real failure per node, so nothing here is fatal.
func Check(controllers string) {
	v2, err := IsV2(CGROUP_ROOT)
	if err != nil {
		db.DPrintf(db.CGROUP_ERR, "Error IsV2: %v", err)
	} else {
		db.DPrintf(db.CGROUP, "%v cgroup2 %v", CGROUP_ROOT, v2)
	}
	if err := CheckControllers(controllers); err != nil {
		db.DPrintf(db.ALWAYS, "Warning: %v", err)
	}
}
