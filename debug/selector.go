package debug

type Tselector string

// ALWAYS
const (
	ALWAYS Tselector = "ALWAYS"
	ERROR            = "ERROR"
	NEVER            = "NEVER"
)

// ERR
const (
	ERR Tselector = "_ERR"
)

// Tests
const (
	TEST  Tselector = "TEST"
	TEST1           = "TEST1"
)

// Launcher
const (
	LAUNCH     Tselector = "LAUNCH"
	LAUNCH_ERR           = LAUNCH + ERR
	NODE                 = "NODE"
	THROTTLE             = "THROTTLE"
	RLIMIT               = "RLIMIT"
)

// Host setup
const (
	PROFILER   Tselector = "PROFILER"
	PKGMGR               = "PKGMGR"
	CGROUP               = "CGROUP"
	CGROUP_ERR           = CGROUP + ERR
	NET                  = "NET"
	PARAMS               = "PARAMS"
)
