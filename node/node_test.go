package node_test

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"conflaunch/node"
	"conflaunch/params"
)

const (
	ROOT = "/tmp/conflux-test"
	IP   = "10.10.1.2"
)

func TestCompile(t *testing.T) {
}

func TestDerived(t *testing.T) {
	const (
		portStart = 30000
		n         = 10
	)
	nodes := node.NewNodes(params.Default(), ROOT, IP, portStart, n)
	assert.Equal(t, n, len(nodes))
	for i, nd := range nodes {
		assert.Equal(t, i, nd.Index)
		assert.Equal(t, IP+":"+strconv.Itoa(portStart+i), nd.PublicAddr)
		assert.Equal(t, "limit"+strconv.Itoa(i+1), nd.Cgroup)
		assert.Equal(t, filepath.Join(ROOT, "node"+strconv.Itoa(i)), nd.Dir)
		assert.Equal(t, filepath.Join(nd.Dir, "conflux.conf"), nd.ConfPath)
		assert.Equal(t, filepath.Join(nd.Dir, "conflux.svg"), nd.SvgPath)
		assert.Equal(t, filepath.Join(nd.Dir, "nohup.out"), nd.LogPath)
	}
}

func TestThreeNodes(t *testing.T) {
	nodes := node.NewNodes(params.Default(), ROOT, IP, 30000, 3)
	nd := nodes[2]
	assert.Equal(t, IP+":30002", nd.PublicAddr)
	assert.Equal(t, ROOT+"/node2", nd.Dir)
	assert.Equal(t, "limit3", nd.Cgroup)
}

func TestArgv(t *testing.T) {
	nd := node.NewNode(params.Default(), ROOT, IP, 30000, 1)
	assert.Equal(t,
		[]string{"conflux", "--config", ROOT + "/node1/conflux.conf", "--public-address", IP + ":30001"},
		nd.Argv("conflux"))
}
