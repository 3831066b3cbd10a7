// Package profiler describes the optional tools a node can be run
// under, the one-time host setup each needs, and how each wraps a
// node's command line.
package profiler

import (
	"fmt"
	"strconv"

	db "conflaunch/debug"
	"conflaunch/params"
	"conflaunch/pkgmgr"
)

type Tprofiler int

const (
	NONE Tprofiler = iota
	FLAMEGRAPH
	HEAPTRACK
)

const (
	FLAMEGRAPH_BIN = "flamegraph"
	HEAPTRACK_BIN  = "heaptrack"
)

func (p Tprofiler) String() string {
	switch p {
	case NONE:
		return "none"
	case FLAMEGRAPH:
		return "flamegraph"
	case HEAPTRACK:
		return "heaptrack"
	default:
		return "unknown profiler " + strconv.Itoa(int(p))
	}
}

func Parse(s string) (Tprofiler, error) {
	switch s {
	case "", "none":
		return NONE, nil
	case "flamegraph":
		return FLAMEGRAPH, nil
	case "heaptrack":
		return HEAPTRACK, nil
	default:
		return NONE, fmt.Errorf("unknown profiler %q", s)
	}
}

// ParseOrNone is Parse, except that an unrecognized name selects NONE
// with a warning instead of failing.
func ParseOrNone(s string) Tprofiler {
	p, err := Parse(s)
	if err != nil {
		db.DPrintf(db.ALWAYS, "%v; launching without a profiler", err)
		return NONE
	}
	return p
}

func (p Tprofiler) NeedsSetup() bool {
	return p != NONE
}

// SetupCmds returns the commands to run once, before any node starts.
func (p Tprofiler) SetupCmds(config *params.Config, mgr pkgmgr.Tmgr, sudo bool) [][]string {
	var cmds [][]string
	switch p {
	case NONE:
	case FLAMEGRAPH:
		fg := config.Profiler.Flamegraph
		if len(fg.PACKAGES) > 0 {
			cmds = append(cmds, mgr.InstallCmd(sudo, fg.PACKAGES...))
		}
		if fg.CARGO_INSTALL != "" {
			cmds = append(cmds, []string{"cargo", "install", fg.CARGO_INSTALL})
		}
		paranoid := "kernel.perf_event_paranoid=" + strconv.Itoa(fg.PERF_EVENT_PARANOID)
		cmds = append(cmds, pkgmgr.Sudo(sudo, []string{"sysctl", "-w", paranoid}))
	case HEAPTRACK:
		ht := config.Profiler.Heaptrack
		if len(ht.PACKAGES) > 0 {
			cmds = append(cmds, mgr.InstallCmd(sudo, ht.PACKAGES...))
		}
	default:
		db.DFatalf("SetupCmds: %v", p)
	}
	return cmds
}

// Wrap returns argv run under the profiler. svg is the flame graph
// output path; other profilers ignore it.
func (p Tprofiler) Wrap(argv []string, svg string) []string {
	switch p {
	case NONE:
		return argv
	case FLAMEGRAPH:
		return append([]string{FLAMEGRAPH_BIN, "-o", svg, "--"}, argv...)
	case HEAPTRACK:
		return append([]string{HEAPTRACK_BIN}, argv...)
	default:
		db.DFatalf("Wrap: %v", p)
		return nil
	}
}
