package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldUpdateCacheHonorsInterval(t *testing.T) {
	lastCacheUpdate = time.Now()
	assert.False(t, ShouldUpdateCache())

	lastCacheUpdate = time.Now().Add(-cacheUpdateInterval - time.Second)
	assert.True(t, ShouldUpdateCache())
}

func TestResetCacheUpdateTimerForcesRefresh(t *testing.T) {
	lastCacheUpdate = time.Now()
	assert.False(t, ShouldUpdateCache())

	ResetCacheUpdateTimer()
	assert.True(t, ShouldUpdateCache())
}
