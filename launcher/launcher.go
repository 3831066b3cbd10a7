// Package launcher starts a batch of local nodes: it throttles the
// simulated network once, prepares the host for the chosen profiler,
// and then spawns every node detached, each in its own cgroup.
//
// The launcher does not supervise what it starts. Once a node's
// process exists the launcher forgets about it; later failures land
// in the node's log file.
package launcher

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"conflaunch/cgroup"
	db "conflaunch/debug"
	"conflaunch/netaddr"
	"conflaunch/node"
	"conflaunch/params"
	"conflaunch/pkgmgr"
	"conflaunch/profiler"
	"conflaunch/rand"
)

type Args struct {
	RootDir   string
	PortStart int
	NumNodes  int
	Bandwidth int
	Profiler  profiler.Tprofiler
	// Advertised IP; discovered when empty.
	IP string
}

func (a *Args) check() error {
	if a.RootDir == "" {
		return fmt.Errorf("root dir not set")
	}
	if a.NumNodes < 0 {
		return fmt.Errorf("bad number of nodes %d", a.NumNodes)
	}
	if a.Bandwidth <= 0 {
		return fmt.Errorf("bad bandwidth %d", a.Bandwidth)
	}
	return netaddr.CheckPorts(a.PortStart, a.NumNodes)
}

type Spawn struct {
	Node *node.Node
	Pid  int
	Err  error
}

type Result struct {
	Id     string
	Spawns []*Spawn
}

func (r *Result) Started() int {
	n := 0
	for _, s := range r.Spawns {
		if s.Err == nil {
			n++
		}
	}
	return n
}

// Err summarizes the spawns that failed to start, if any.
func (r *Result) Err() error {
	var first error
	failed := 0
	for _, s := range r.Spawns {
		if s.Err != nil {
			if first == nil {
				first = s.Err
			}
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d nodes failed to start; first: %v", failed, len(r.Spawns), first)
}

type Launcher struct {
	config    *params.Config
	runner    Runner
	dryRun    bool
	sudo      bool
	detectMgr func() (pkgmgr.Tmgr, error)
	setNofile func(uint64) error
	checkHost func(controllers string)
	localIP   func() (string, error)
	statNode  func(dir string) error
}

func NewLauncher(config *params.Config, runner Runner) *Launcher {
	return &Launcher{
		config:    config,
		runner:    runner,
		dryRun:    isDryRunner(runner),
		sudo:      config.Profiler.SUDO && os.Geteuid() != 0,
		detectMgr: pkgmgr.Detect,
		setNofile: raiseNofile,
		checkHost: cgroup.Check,
		localIP:   netaddr.LocalIP,
		statNode:  statDir,
	}
}

func statDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%v isn't dir", dir)
	}
	return nil
}

// Launch spawns args.NumNodes nodes and returns once all spawns have
// been issued. Argument and setup errors are returned; per-node start
// failures are only recorded in the Result.
func (l *Launcher) Launch(ctx context.Context, args *Args) (*Result, error) {
	if err := args.check(); err != nil {
		return nil, err
	}
	res := &Result{Id: "launch-" + rand.String(8)}
	ip := args.IP
	if ip == "" {
		lip, err := l.localIP()
		if err != nil {
			return nil, fmt.Errorf("local ip: %v", err)
		}
		ip = lip
	}
	db.DPrintf(db.LAUNCH, "%v: %d nodes root %v ip %v ports %d.. bandwidth %v profiler %v",
		res.Id, args.NumNodes, args.RootDir, ip, args.PortStart, args.Bandwidth, args.Profiler)

	if l.dryRun {
		db.DPrintf(db.LAUNCH, "%v: dry run, leaving rlimit and cgroups alone", res.Id)
	} else {
		if n := l.config.Rlimit.NOFILE; n > 0 {
			if err := l.setNofile(n); err != nil {
				db.DPrintf(db.ALWAYS, "Warning: raise nofile to %v: %v", humanize.Comma(int64(n)), err)
			}
		}
		l.checkHost(l.config.Cgroup.CONTROLLERS)
	}
	l.throttle(ctx, args)
	if err := l.setup(ctx, args.Profiler); err != nil {
		return nil, err
	}

	start := time.Now()
	for _, nd := range node.NewNodes(l.config, args.RootDir, ip, args.PortStart, args.NumNodes) {
		if err := ctx.Err(); err != nil {
			db.DPrintf(db.ALWAYS, "%v: cancelled after %d spawns", res.Id, len(res.Spawns))
			return res, err
		}
		res.Spawns = append(res.Spawns, l.spawn(nd, args.Profiler))
	}
	db.DPrintf(db.LAUNCH, "%v: issued %d spawns in %v", res.Id, len(res.Spawns), time.Since(start))
	return res, nil
}

// Run the throttling script once for the whole batch. The nodes start
// regardless of its outcome.
func (l *Launcher) throttle(ctx context.Context, args *Args) {
	script := l.config.Throttle.SCRIPT
	if script == "" {
		return
	}
	argv := []string{script, strconv.Itoa(args.Bandwidth), strconv.Itoa(args.NumNodes)}
	db.DPrintf(db.THROTTLE, "Throttle %v", argv)
	if err := l.runner.Run(ctx, argv); err != nil {
		db.DPrintf(db.ALWAYS, "Warning: throttle: %v", err)
	}
}

// Prepare the host for p; runs each setup command once, in order.
func (l *Launcher) setup(ctx context.Context, p profiler.Tprofiler) error {
	if !p.NeedsSetup() {
		return nil
	}
	mgr, err := l.detectMgr()
	if err != nil {
		if !l.dryRun {
			return fmt.Errorf("setup %v: %v", p, err)
		}
		db.DPrintf(db.ALWAYS, "Warning: %v; printing %v commands", err, pkgmgr.APT)
		mgr = pkgmgr.APT
	}
	for _, argv := range p.SetupCmds(l.config, mgr, l.sudo) {
		db.DPrintf(db.PROFILER, "Setup %v: %v", p, argv)
		if err := l.runner.Run(ctx, argv); err != nil {
			return fmt.Errorf("setup %v: %v", p, err)
		}
	}
	return nil
}

func (l *Launcher) nodeCmd(nd *node.Node, p profiler.Tprofiler) *Cmd {
	argv := p.Wrap(nd.Argv(l.config.Node.BINARY), nd.SvgPath)
	argv = cgroup.Exec(l.config.Cgroup.EXEC, l.config.Cgroup.CONTROLLERS, nd.Cgroup, argv)
	c := &Cmd{
		Argv: argv,
		Env:  l.config.Node.ENV,
	}
	if l.config.Node.LOG_FILE != "" {
		c.LogPath = nd.LogPath
	}
	return c
}

func (l *Launcher) spawn(nd *node.Node, p profiler.Tprofiler) *Spawn {
	if err := l.statNode(nd.Dir); err != nil {
		db.DPrintf(db.ALWAYS, "Warning: node%d dir: %v", nd.Index, err)
	}
	c := l.nodeCmd(nd, p)
	db.DPrintf(db.NODE, "Spawn %v: %v", nd, c)
	pid, err := l.runner.Start(c)
	if err != nil {
		db.DPrintf(db.ERROR, "Spawn node%d: %v", nd.Index, err)
	} else {
		db.DPrintf(db.NODE, "node%d pid %v", nd.Index, pid)
	}
	return &Spawn{Node: nd, Pid: pid, Err: err}
}
