// Package pkgmgr picks the host's package manager and builds install
// commands for it.
package pkgmgr

import (
	"fmt"

	"github.com/shirou/gopsutil/host"

	db "conflaunch/debug"
)

type Tmgr string

const (
	APT Tmgr = "apt-get"
	YUM Tmgr = "yum"
	DNF Tmgr = "dnf"
)

// Detect the package manager from the host's platform family.
func Detect() (Tmgr, error) {
	info, err := host.Info()
	if err != nil {
		return "", fmt.Errorf("host info: %v", err)
	}
	db.DPrintf(db.PKGMGR, "Host platform %v family %v version %v", info.Platform, info.PlatformFamily, info.PlatformVersion)
	return ForFamily(info.PlatformFamily)
}

func ForFamily(family string) (Tmgr, error) {
	switch family {
	case "debian":
		return APT, nil
	case "rhel":
		return YUM, nil
	case "fedora":
		return DNF, nil
	default:
		return "", fmt.Errorf("unsupported platform family %q", family)
	}
}

// InstallCmd returns the argv that installs pkgs non-interactively.
func (m Tmgr) InstallCmd(sudo bool, pkgs ...string) []string {
	argv := []string{string(m), "install", "-y"}
	argv = append(argv, pkgs...)
	return Sudo(sudo, argv)
}

// Sudo prefixes argv with sudo when asked to.
func Sudo(sudo bool, argv []string) []string {
	if !sudo {
		return argv
	}
	return append([]string{"sudo"}, argv...)
}
