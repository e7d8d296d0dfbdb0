package evio

import (
	lru "github.com/hashicorp/golang-lru"
)

type eventKey struct{ rec, evt int }

// decodeCache is a bounded LRU of decoded event trees. A nil *decodeCache
// is a valid, always-missing cache.
type decodeCache struct {
	c *lru.Cache
}

func newDecodeCache(size int) (*decodeCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &decodeCache{c: c}, nil
}

func (d *decodeCache) get(k eventKey) (*Bank, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.c.Get(k)
	if !ok {
		return nil, false
	}
	return v.(*Bank), true
}

func (d *decodeCache) add(k eventKey, b *Bank) {
	if d == nil {
		return
	}
	d.c.Add(k, b)
}

func (d *decodeCache) len() int {
	if d == nil {
		return 0
	}
	return d.c.Len()
}

func (d *decodeCache) purge() {
	if d == nil {
		return
	}
	d.c.Purge()
}
