package cgroup

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile(t *testing.T) {
}

func TestName(t *testing.T) {
	for i := 0; i < 16; i++ {
		assert.Equal(t, "limit"+strconv.Itoa(i+1), Name("limit", i))
	}
	assert.Equal(t, "limit1", Name("limit", 0))
}

func TestExec(t *testing.T) {
	argv := Exec("cgexec", "net_cls", "limit3", []string{"conflux", "--config", "c"})
	assert.Equal(t, []string{"cgexec", "-g", "net_cls:limit3", "conflux", "--config", "c"}, argv)
}

const procCgroups = `#subsys_name	hierarchy	num_cgroups	enabled
cpuset	0	1	1
cpu	0	1	1
net_cls	0	1	0
`

func TestParseProcCgroups(t *testing.T) {
	m, err := parseProcCgroups(strings.NewReader(procCgroups))
	assert.Nil(t, err)
	assert.True(t, m["cpu"])
	assert.True(t, m["cpuset"])
	assert.False(t, m["net_cls"])
	assert.False(t, m["memory"])

	_, err = parseProcCgroups(strings.NewReader("cpu 0 1\n"))
	assert.NotNil(t, err)
}
