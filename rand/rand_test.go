package rand

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	for _, n := range []int{0, 1, 2, 4, 7, 8, 16} {
		s := String(n)
		assert.Equal(t, n, len(s))
		assert.Equal(t, "", strings.Trim(s, "0123456789abcdef"), "non-hex in %q", s)
	}
}
