package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	db "conflaunch/debug"
	"conflaunch/launcher"
	"conflaunch/params"
	"conflaunch/profiler"
	"conflaunch/rand"
)

var (
	configPath string
	ipArg      string
	binaryArg  string
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "conflaunch <root_dir> <p2p_port_start> <num_nodes> [bandwidth] [flamegraph|heaptrack]",
	Short: "Launch local conflux nodes for tests and benchmarks",
	Long: `Launch num_nodes conflux nodes in the background, node i running from
root_dir/node{i} with public address <ip>:p2p_port_start+i inside cgroup
limit{i+1}. The bandwidth throttling script runs once before any node
starts. An optional profiler wraps every node.`,
	Args:          cobra.RangeArgs(3, 5),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file overriding the default tunables")
	rootCmd.Flags().StringVar(&ipArg, "ip", "", "IP nodes advertise (default: discovered)")
	rootCmd.Flags().StringVar(&binaryArg, "binary", "", "node binary (default: from config)")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print commands instead of running them")
}

// Positional arguments to launcher.Args; bandwidth defaults from
// config and an absent profiler means none.
func parseArgs(config *params.Config, pos []string) (*launcher.Args, error) {
	port, err := strconv.Atoi(pos[1])
	if err != nil {
		return nil, fmt.Errorf("bad p2p_port_start %q: %v", pos[1], err)
	}
	n, err := strconv.Atoi(pos[2])
	if err != nil {
		return nil, fmt.Errorf("bad num_nodes %q: %v", pos[2], err)
	}
	args := &launcher.Args{
		RootDir:   pos[0],
		PortStart: port,
		NumNodes:  n,
		Bandwidth: config.Throttle.DEFAULT_BANDWIDTH,
		Profiler:  profiler.NONE,
		IP:        ipArg,
	}
	if len(pos) > 3 {
		bw, err := strconv.Atoi(pos[3])
		if err != nil {
			return nil, fmt.Errorf("bad bandwidth %q: %v", pos[3], err)
		}
		args.Bandwidth = bw
	}
	if len(pos) > 4 {
		args.Profiler = profiler.ParseOrNone(pos[4])
	}
	return args, nil
}

func run(cmd *cobra.Command, pos []string) error {
	config, err := params.ReadConfigFile(configPath)
	if err != nil {
		return err
	}
	if binaryArg != "" {
		config.Node.BINARY = binaryArg
	}
	args, err := parseArgs(config, pos)
	if err != nil {
		return err
	}
	var runner launcher.Runner
	if dryRun {
		runner = launcher.NewDryRunner(cmd.OutOrStdout())
	} else {
		runner = launcher.NewExecRunner()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := launcher.NewLauncher(config, runner).Launch(ctx, args)
	if err != nil {
		return err
	}
	db.DPrintf(db.ALWAYS, "%v: started %d of %d nodes", res.Id, res.Started(), args.NumNodes)
	return res.Err()
}

func main() {
	db.SetDebugPid("conflaunch-" + rand.String(4))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
