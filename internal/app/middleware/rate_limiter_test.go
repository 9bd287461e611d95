package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustsAndRefills(t *testing.T) {
	tb := NewTokenBucket(10, 3)

	// 初始桶是满的
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	// 等待填充后恢复
	time.Sleep(150 * time.Millisecond)
	assert.True(t, tb.Allow())
}

func TestTokenBucketCapacityCap(t *testing.T) {
	tb := NewTokenBucket(1000, 2)

	time.Sleep(50 * time.Millisecond)

	// 填充不会超过容量
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}
