package pkgmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile(t *testing.T) {
}

func TestForFamily(t *testing.T) {
	m, err := ForFamily("debian")
	assert.Nil(t, err)
	assert.Equal(t, APT, m)
	m, err = ForFamily("rhel")
	assert.Nil(t, err)
	assert.Equal(t, YUM, m)
	m, err = ForFamily("fedora")
	assert.Nil(t, err)
	assert.Equal(t, DNF, m)
	_, err = ForFamily("plan9")
	assert.NotNil(t, err)
}

func TestInstallCmd(t *testing.T) {
	assert.Equal(t, []string{"sudo", "apt-get", "install", "-y", "heaptrack"}, APT.InstallCmd(true, "heaptrack"))
	assert.Equal(t, []string{"yum", "install", "-y", "a", "b"}, YUM.InstallCmd(false, "a", "b"))
}
