package audio

import (
	"sync"

	"github.com/lixenwraith/chiptale/core"
)

// loopCache stores generated LoopSets per theme. Generation is
// deterministic apart from noise texture, so entries live for the
// process lifetime and are never evicted.
type loopCache struct {
	mu    sync.RWMutex
	store [core.ThemeCount]*LoopSet
}

func newLoopCache() *loopCache {
	return &loopCache{}
}

// get returns the cached LoopSet or composes it on first use
func (c *loopCache) get(theme core.Theme, duration float64) (*LoopSet, error) {
	if !theme.Valid() {
		theme = core.ThemeLast
	}

	c.mu.RLock()
	if ls := c.store[theme]; ls != nil {
		c.mu.RUnlock()
		return ls, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if ls := c.store[theme]; ls != nil {
		return ls, nil
	}

	ls, err := ComposeLoop(theme, duration)
	if err != nil {
		return nil, err
	}
	c.store[theme] = ls
	return ls, nil
}

// size returns the number of themes composed so far
func (c *loopCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, ls := range c.store {
		if ls != nil {
			n++
		}
	}
	return n
}
