// Package netaddr finds the host's IP and builds the addresses nodes
// advertise to their peers.
package netaddr

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	db "conflaunch/debug"
)

func localIPs() ([]net.IP, error) {
	var ips []net.IP
	ifaces, err := net.Interfaces()
	if err != nil {
		db.DPrintf(db.ERROR, "Err Get net interfaces: %v", err)
		return nil, err
	}
	for _, i := range ifaces {
		if i.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := i.Addrs()
		if err != nil {
			return nil, err
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip.To4() == nil {
				continue
			}
			db.DPrintf(db.NET, "Interface %v ip %v", i.Name, ip)
			ips = append(ips, ip)
		}
	}
	return ips, nil
}

// XXX should find what outgoing ip is
func LocalIP() (string, error) {
	ips, err := localIPs()
	if err != nil {
		return "", err
	}
	// Prefer a private address
	for _, ip := range ips {
		if ip.IsPrivate() {
			return ip.String(), nil
		}
	}
	for _, ip := range ips {
		if !strings.HasPrefix(ip.String(), "127.") {
			return ip.String(), nil
		}
	}
	return "", fmt.Errorf("LocalIP: no IP")
}

// PublicAddr is the address node i advertises: ip with port
// portStart+i.
func PublicAddr(ip string, portStart, i int) string {
	return net.JoinHostPort(ip, strconv.Itoa(portStart+i))
}

// CheckPorts verifies that ports portStart..portStart+n-1 are valid
// TCP ports.
func CheckPorts(portStart, n int) error {
	if portStart <= 0 {
		return fmt.Errorf("bad port start %d", portStart)
	}
	if portStart > 65535 {
		return fmt.Errorf("bad port start %d", portStart)
	}
	// Compare counts rather than portStart+n-1, which overflows for huge n.
	if n > 65536-portStart {
		return fmt.Errorf("%d ports from %d exceeds 65535", n, portStart)
	}
	return nil
}
