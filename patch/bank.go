package patch

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
)

// Bank loads and caches decoded patch files from a filesystem. Real GF1
// instrument libraries hold hundreds of .pat files; re-decoding one on
// every program change is wasteful, so decoded instrument sets are kept
// in a bounded LRU cache keyed by path.
type Bank struct {
	fs    afero.Fs
	cache *lru.Cache[string, []Instrument]
}

// NewBank returns a Bank reading patch files from fs, caching the most
// recently used decoded sets up to capacity.
func NewBank(fs afero.Fs, capacity int) (*Bank, error) {
	cache, err := lru.New[string, []Instrument](capacity)
	if err != nil {
		return nil, fmt.Errorf("patch: new bank: %w", err)
	}
	return &Bank{fs: fs, cache: cache}, nil
}

// Load decodes the instruments in path, or returns the cached result of
// a previous Load for the same path.
func (b *Bank) Load(path string) ([]Instrument, error) {
	if cached, ok := b.cache.Get(path); ok {
		return cached, nil
	}
	r, err := openPatch(b.fs, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	instruments, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("patch: decode %s: %w", path, err)
	}
	b.cache.Add(path, instruments)
	return instruments, nil
}
