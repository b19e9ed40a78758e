package dataset

import "gonum.org/v1/gonum/mat"

// Cache memoizes loaded datasets by identifier for the lifetime of one
// batch run. Many experiment directories reference the same full dataset,
// and a load can take minutes; the first request pays for it, the rest
// reuse the matrix. No eviction.
//
// Not safe for concurrent use; the pipeline populates and reads it from a
// single goroutine.
type Cache struct {
	load    func(Name, string) (*mat.Dense, error)
	entries map[Name]*mat.Dense
}

// NewCache creates an empty cache backed by the loader registry.
func NewCache() *Cache {
	return &Cache{
		load:    Load,
		entries: make(map[Name]*mat.Dense),
	}
}

// NewCacheWithLoader creates a cache with a custom load function, used by
// tests to count or fake loads.
func NewCacheWithLoader(load func(Name, string) (*mat.Dense, error)) *Cache {
	return &Cache{
		load:    load,
		entries: make(map[Name]*mat.Dense),
	}
}

// Get returns the dataset matrix for name, loading it from path on first
// request and from memory afterwards.
func (c *Cache) Get(name Name, path string) (*mat.Dense, error) {
	if m, ok := c.entries[name]; ok {
		return m, nil
	}
	m, err := c.load(name, path)
	if err != nil {
		return nil, err
	}
	c.entries[name] = m
	return m, nil
}
