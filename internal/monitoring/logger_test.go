package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheLoggerHandlesShortKeys(t *testing.T) {
	l := NewLogger()

	assert.NotPanics(t, func() {
		l.CacheLogger("get", "abc", true, 1)
		l.CacheLogger("get", "", false, 0)
		l.CacheLogger("set", "0123456789abcdef", false, 3)
	})
}
