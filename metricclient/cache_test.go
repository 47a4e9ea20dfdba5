// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metricclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAIScoreCacheSetAndGet(t *testing.T) {
	c, err := newAIScoreCache(time.Minute)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.get("http://example.com/a.mp4")
	require.False(t, ok)

	c.set("http://example.com/a.mp4", 0.42)
	c.cache.Wait()

	score, ok := c.get("http://example.com/a.mp4")
	require.True(t, ok)
	require.Equal(t, 0.42, score)
}

func TestAIScoreCacheDistinguishesURLs(t *testing.T) {
	c, err := newAIScoreCache(time.Minute)
	require.NoError(t, err)
	defer c.Close()

	c.set("http://example.com/a.mp4", 0.1)
	c.set("http://example.com/b.mp4", 0.9)
	c.cache.Wait()

	scoreA, _ := c.get("http://example.com/a.mp4")
	scoreB, _ := c.get("http://example.com/b.mp4")
	require.Equal(t, 0.1, scoreA)
	require.Equal(t, 0.9, scoreB)
}
