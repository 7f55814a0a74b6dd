package auth

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlacklistRoundTrip(t *testing.T) {
	b := NewBlacklist()

	b.Add("token-1")
	assert.True(t, b.Contains("token-1"))
	assert.Equal(t, 1, b.Count())

	assert.True(t, b.Remove("token-1"))
	assert.False(t, b.Contains("token-1"))
	assert.Equal(t, 0, b.Count())
}

func TestBlacklistRemoveMissing(t *testing.T) {
	b := NewBlacklist()
	assert.False(t, b.Remove("never-added"))
}

func TestBlacklistClear(t *testing.T) {
	b := NewBlacklist()
	b.Add("a")
	b.Add("b")
	b.Add("a") // duplicate, still one entry

	assert.Equal(t, 2, b.Clear())
	assert.Equal(t, 0, b.Count())
	assert.False(t, b.Contains("a"))
}

func TestBlacklistConcurrentAccess(t *testing.T) {
	b := NewBlacklist()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			b.Add(fmt.Sprintf("token-%d", i))
		}(i)
		go func(i int) {
			defer wg.Done()
			b.Contains(fmt.Sprintf("token-%d", i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, b.Count())
}
