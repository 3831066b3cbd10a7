// Package node computes the values derived for each node of a launch.
package node

import (
	"fmt"
	"path/filepath"
	"strconv"

	"conflaunch/cgroup"
	"conflaunch/netaddr"
	"conflaunch/params"
)

const DIR_PREFIX = "node"

type Node struct {
	Index      int
	Dir        string
	ConfPath   string
	SvgPath    string
	LogPath    string
	PublicAddr string
	Cgroup     string
}

// NewNode derives node i's working directory, files, address, and
// cgroup from the launch parameters.
func NewNode(config *params.Config, rootDir, ip string, portStart, i int) *Node {
	dir := Dir(rootDir, i)
	return &Node{
		Index:      i,
		Dir:        dir,
		ConfPath:   filepath.Join(dir, config.Node.CONFIG_FILE),
		SvgPath:    filepath.Join(dir, config.Node.FLAMEGRAPH_FILE),
		LogPath:    filepath.Join(dir, config.Node.LOG_FILE),
		PublicAddr: netaddr.PublicAddr(ip, portStart, i),
		Cgroup:     cgroup.Name(config.Cgroup.PREFIX, i),
	}
}

// NewNodes derives nodes 0..n-1.
func NewNodes(config *params.Config, rootDir, ip string, portStart, n int) []*Node {
	nodes := make([]*Node, n)
	for i := range nodes {
		nodes[i] = NewNode(config, rootDir, ip, portStart, i)
	}
	return nodes
}

func Dir(rootDir string, i int) string {
	return filepath.Join(rootDir, DIR_PREFIX+strconv.Itoa(i))
}

// Argv is the node binary's own command line.
func (n *Node) Argv(binary string) []string {
	return []string{binary, "--config", n.ConfPath, "--public-address", n.PublicAddr}
}

func (n *Node) String() string {
	return fmt.Sprintf("&{ node%d dir:%v addr:%v cgroup:%v }", n.Index, n.Dir, n.PublicAddr, n.Cgroup)
}
