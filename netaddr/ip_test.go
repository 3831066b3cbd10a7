package netaddr

import (
	"math"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile(t *testing.T) {
}

func TestPublicAddr(t *testing.T) {
	const portStart = 30000
	for i := 0; i < 8; i++ {
		addr := PublicAddr("10.0.0.7", portStart, i)
		host, port, err := net.SplitHostPort(addr)
		assert.Nil(t, err)
		assert.Equal(t, "10.0.0.7", host)
		assert.Equal(t, strconv.Itoa(portStart+i), port)
	}
	assert.Equal(t, "10.0.0.7:30002", PublicAddr("10.0.0.7", portStart, 2))
	assert.Equal(t, "[fe80::1]:30001", PublicAddr("fe80::1", portStart, 1))
}

func TestCheckPorts(t *testing.T) {
	assert.Nil(t, CheckPorts(30000, 3))
	assert.Nil(t, CheckPorts(65533, 3))
	assert.NotNil(t, CheckPorts(65534, 3))
	assert.NotNil(t, CheckPorts(0, 1))
	assert.NotNil(t, CheckPorts(70000, 0))
	assert.NotNil(t, CheckPorts(2, math.MaxInt))
	assert.NotNil(t, CheckPorts(30000, math.MaxInt-29000))
}

func TestLocalIP(t *testing.T) {
	ip, err := LocalIP()
	if err != nil {
		t.Skipf("no non-loopback interface: %v", err)
	}
	assert.NotNil(t, net.ParseIP(ip), "LocalIP %v", ip)
}
