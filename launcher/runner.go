package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	db "conflaunch/debug"
)

// A command to spawn in the background.
type Cmd struct {
	Argv    []string
	Env     []string // appended to the launcher's environment
	LogPath string   // stdout and stderr, in append mode; "" discards
}

func (c *Cmd) String() string {
	s := strings.Join(c.Argv, " ")
	if len(c.Env) > 0 {
		s = strings.Join(c.Env, " ") + " " + s
	}
	if c.LogPath != "" {
		s += " >> " + c.LogPath + " 2>&1 &"
	}
	return s
}

// Runner executes the launcher's commands. Run waits for argv to
// exit; Start returns as soon as the process exists.
type Runner interface {
	Run(ctx context.Context, argv []string) error
	Start(c *Cmd) (int, error)
}

type execRunner struct {
	stdout io.Writer
	stderr io.Writer
}

func NewExecRunner() Runner {
	return &execRunner{stdout: os.Stdout, stderr: os.Stderr}
}

func (er *execRunner) Run(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = er.stdout
	cmd.Stderr = er.stderr
	db.DPrintf(db.LAUNCH, "Run %v", argv)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("Err run %v: %v", strings.Join(argv, " "), err)
	}
	return nil
}

func (er *execRunner) Start(c *Cmd) (int, error) {
	cmd := exec.Command(c.Argv[0], c.Argv[1:]...)
	cmd.Env = append(os.Environ(), c.Env...)
	// New session, so the node outlives the launcher and its terminal.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if c.LogPath != "" {
		f, err := os.OpenFile(c.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			db.DPrintf(db.LAUNCH_ERR, "Err open log %v: %v", c.LogPath, err)
		} else {
			defer f.Close()
			cmd.Stdout = f
			cmd.Stderr = f
		}
	}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("Err start %v: %v", c.Argv[0], err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		db.DPrintf(db.LAUNCH_ERR, "Err release %v: %v", pid, err)
	}
	return pid, nil
}

// dryRunner prints commands instead of running them.
type dryRunner struct {
	wr io.Writer
}

func NewDryRunner(wr io.Writer) Runner {
	return &dryRunner{wr: wr}
}

func isDryRunner(r Runner) bool {
	_, ok := r.(*dryRunner)
	return ok
}

func (dr *dryRunner) Run(ctx context.Context, argv []string) error {
	_, err := fmt.Fprintln(dr.wr, strings.Join(argv, " "))
	return err
}

func (dr *dryRunner) Start(c *Cmd) (int, error) {
	_, err := fmt.Fprintln(dr.wr, c.String())
	return 0, err
}
