package debug

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
)

//
// Debug output is controled by LAUNCHDEBUG environment variable, which
// can be a list of labels (e.g., "LAUNCH;CGROUP").
//

const (
	LAUNCHDEBUG    = "LAUNCHDEBUG"
	LAUNCHDEBUGPID = "LAUNCHDEBUGPID"
)

var (
	mu     sync.Mutex
	labels map[Tselector]bool
)

func init() {
	// XXX may want to set log.Ldate when not debugging
	log.SetFlags(log.Ltime | log.Lmicroseconds)
}

func getLabels() map[Tselector]bool {
	mu.Lock()
	defer mu.Unlock()

	if labels == nil {
		labels = parseLabels(os.Getenv(LAUNCHDEBUG))
	}
	return labels
}

func parseLabels(s string) map[Tselector]bool {
	m := make(map[Tselector]bool)
	if s == "" {
		return m
	}
	for _, l := range strings.Split(s, ";") {
		if l == "" {
			continue
		}
		m[Tselector(l)] = true
	}
	return m
}

// Reload LAUNCHDEBUG; used by tests that change the environment.
func ResetLabels() {
	mu.Lock()
	defer mu.Unlock()
	labels = nil
}

func SetDebugPid(pid string) {
	os.Setenv(LAUNCHDEBUGPID, pid)
}

func GetDebugPid() string {
	return os.Getenv(LAUNCHDEBUGPID)
}

func WillBePrinted(label Tselector) bool {
	if label == ALWAYS || label == ERROR {
		return true
	}
	if label == NEVER {
		return false
	}
	return getLabels()[label]
}

func DPrintf(label Tselector, format string, v ...interface{}) {
	if WillBePrinted(label) {
		log.Printf("%v %v %v", GetDebugPid(), label, fmt.Sprintf(format, v...))
	}
}

func DFatalf(format string, v ...interface{}) {
	// Get info for the caller.
	pc, file, line, ok := runtime.Caller(1)
	fnDetails := runtime.FuncForPC(pc)
	if ok && fnDetails != nil {
		log.Fatalf("FATAL %v %v %v:%v %v", GetDebugPid(), fnDetails.Name(), file, line, fmt.Sprintf(format, v...))
	} else {
		log.Fatalf("FATAL %v (missing details) %v", GetDebugPid(), fmt.Sprintf(format, v...))
	}
}
