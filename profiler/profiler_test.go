package profiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"conflaunch/params"
	"conflaunch/pkgmgr"
	"conflaunch/profiler"
)

func TestCompile(t *testing.T) {
}

func TestParse(t *testing.T) {
	for s, want := range map[string]profiler.Tprofiler{
		"":           profiler.NONE,
		"none":       profiler.NONE,
		"flamegraph": profiler.FLAMEGRAPH,
		"heaptrack":  profiler.HEAPTRACK,
	} {
		p, err := profiler.Parse(s)
		assert.Nil(t, err, "Parse %q", s)
		assert.Equal(t, want, p, "Parse %q", s)
	}
	_, err := profiler.Parse("valgrind")
	assert.NotNil(t, err)
	assert.Equal(t, profiler.NONE, profiler.ParseOrNone("valgrind"))
	assert.Equal(t, profiler.HEAPTRACK, profiler.ParseOrNone("heaptrack"))
}

func TestString(t *testing.T) {
	for _, p := range []profiler.Tprofiler{profiler.NONE, profiler.FLAMEGRAPH, profiler.HEAPTRACK} {
		p1, err := profiler.Parse(p.String())
		assert.Nil(t, err)
		assert.Equal(t, p, p1)
	}
}

func TestWrap(t *testing.T) {
	argv := []string{"conflux", "--config", "/r/node0/conflux.conf"}
	assert.Equal(t, argv, profiler.NONE.Wrap(argv, "/r/node0/conflux.svg"))
	assert.Equal(t,
		[]string{"flamegraph", "-o", "/r/node0/conflux.svg", "--", "conflux", "--config", "/r/node0/conflux.conf"},
		profiler.FLAMEGRAPH.Wrap(argv, "/r/node0/conflux.svg"))
	assert.Equal(t,
		[]string{"heaptrack", "conflux", "--config", "/r/node0/conflux.conf"},
		profiler.HEAPTRACK.Wrap(argv, "/r/node0/conflux.svg"))
}

func TestSetupCmds(t *testing.T) {
	config := params.Default()

	assert.False(t, profiler.NONE.NeedsSetup())
	assert.Equal(t, 0, len(profiler.NONE.SetupCmds(config, pkgmgr.APT, true)))

	cmds := profiler.FLAMEGRAPH.SetupCmds(config, pkgmgr.APT, true)
	assert.Equal(t, [][]string{
		{"sudo", "apt-get", "install", "-y", "linux-tools-common", "linux-tools-generic"},
		{"cargo", "install", "flamegraph"},
		{"sudo", "sysctl", "-w", "kernel.perf_event_paranoid=-1"},
	}, cmds)

	cmds = profiler.HEAPTRACK.SetupCmds(config, pkgmgr.YUM, false)
	assert.Equal(t, [][]string{{"yum", "install", "-y", "heaptrack"}}, cmds)
}
