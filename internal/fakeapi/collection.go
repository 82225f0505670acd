package fakeapi

import (
	"maps"
	"sync"
)

// record is an entity as stored and served, keyed by wire field names.
type record map[string]any

func (r record) str(keys ...string) string {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// collection keeps records in insertion order.
type collection struct {
	items map[string]record
	order []string
	mu    sync.RWMutex
}

func newCollection() *collection {
	return &collection{items: make(map[string]record)}
}

func (c *collection) all(match func(record) bool) []record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]record, 0, len(c.order))
	for _, id := range c.order {
		r := c.items[id]
		if match == nil || match(r) {
			out = append(out, maps.Clone(r))
		}
	}
	return out
}

func (c *collection) get(id string) (record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return maps.Clone(r), true
}

// insert stores r under r["id"] unless conflict reports a clash with an
// existing record.
func (c *collection) insert(r record, conflict func(existing record) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if conflict != nil {
		for _, existing := range c.items {
			if conflict(existing) {
				return false
			}
		}
	}
	id, _ := r["id"].(string)
	c.items[id] = maps.Clone(r)
	c.order = append(c.order, id)
	return true
}

// update applies fn to a copy of the record and stores the result. fn
// returning an error aborts the update.
func (c *collection) update(id string, fn func(r record, others []record) error) (record, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.items[id]
	if !ok {
		return nil, false, nil
	}
	others := make([]record, 0, len(c.items)-1)
	for k, r := range c.items {
		if k != id {
			others = append(others, r)
		}
	}
	next := maps.Clone(cur)
	if err := fn(next, others); err != nil {
		return nil, true, err
	}
	c.items[id] = next
	return maps.Clone(next), true, nil
}

func (c *collection) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
