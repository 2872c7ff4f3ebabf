package tinytcl

import (
	"github.com/segmentio/fasthash/fnv1a"
)

const maxCachedScripts = 128

type cachedParse struct {
	script   string
	filename string
	commands []Command
}

// parseCache remembers the parse of recently evaluated script text. Entries
// are keyed by an FNV-1a hash and confirmed by comparing the full text, so
// each entry keeps its script alive.
type parseCache struct {
	entries map[uint64]cachedParse
	hits    int
	misses  int
}

func newParseCache() *parseCache {
	return &parseCache{entries: make(map[uint64]cachedParse)}
}

func cacheKey(script, filename string) uint64 {
	return fnv1a.AddString64(fnv1a.HashString64(filename), script)
}

func (c *parseCache) get(script, filename string) ([]Command, bool) {
	entry, ok := c.entries[cacheKey(script, filename)]
	if !ok || entry.script != script || entry.filename != filename {
		c.misses++
		return nil, false
	}
	c.hits++
	return entry.commands, true
}

func (c *parseCache) put(script, filename string, commands []Command) {
	if len(c.entries) >= maxCachedScripts {
		// drop an arbitrary entry
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[cacheKey(script, filename)] = cachedParse{script: script, filename: filename, commands: commands}
}

func (c *parseCache) len() int {
	return len(c.entries)
}
