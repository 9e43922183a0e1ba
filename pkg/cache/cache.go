package cache

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Entry records an amplifier that the client has previously discovered or
// connected to.
type Entry struct {
	Address     string    `json:"address"`
	DisplayName string    `json:"display_name,omitempty"`
	LastSeen    time.Time `json:"last_seen"`
}

type DeviceCache struct {
	MaxEntries int
	Devices    map[string]Entry `json:"devices"`
	lock       sync.Mutex
}

// New returns a DeviceCache that holds records for up to maxEntries amplifiers.
// The DeviceCache uses a least-recently-seen eviction strategy; an entry is
// "seen" when [DeviceCache.Update] is called for its address, not when it's
// loaded from or saved to the DeviceCache.
//
// Set maxEntries to zero for an unbounded cache.
func New(maxEntries int) *DeviceCache {
	return &DeviceCache{
		MaxEntries: maxEntries,
		Devices:    make(map[string]Entry),
	}
}

// Import a DeviceCache using data in r.
// The data should previously have been generated using [DeviceCache.Export].
func Import(r io.Reader) (*DeviceCache, error) {
	var cache DeviceCache
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&cache); err != nil {
		return nil, err
	}
	if cache.Devices == nil {
		cache.Devices = make(map[string]Entry)
	}
	return &cache, nil
}

// ImportFromFile reads a DeviceCache from disk.
func ImportFromFile(filename string) (*DeviceCache, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Import(file)
}

// Export writes a serialized DeviceCache to w.
func (c *DeviceCache) Export(w io.Writer) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	return json.NewEncoder(w).Encode(c)
}

// ExportToFile writes a DeviceCache to disk.
func (c *DeviceCache) ExportToFile(filename string) error {
	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	return c.Export(file)
}

// Update the DeviceCache's entry for address, marking it as seen now.
// An empty displayName leaves any previously recorded name in place.
func (c *DeviceCache) Update(address string, displayName string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	entry := c.Devices[address]
	entry.Address = address
	if displayName != "" {
		entry.DisplayName = displayName
	}
	entry.LastSeen = time.Now()
	c.Devices[address] = entry

	if c.MaxEntries > 0 && len(c.Devices) > c.MaxEntries {
		// TODO: Replace with a proper cache
		oldestAddress := address
		oldestSeenTime := time.Now()
		for a, e := range c.Devices {
			if e.LastSeen.Before(oldestSeenTime) {
				oldestAddress = a
				oldestSeenTime = e.LastSeen
			}
		}
		delete(c.Devices, oldestAddress)
	}
	return nil
}

// GetEntry returns the cached record for address.
func (c *DeviceCache) GetEntry(address string) (Entry, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	entry, ok := c.Devices[address]
	return entry, ok
}

// FindByName returns the cached record whose display name equals name.
// If multiple entries share the name, the most recently seen wins.
func (c *DeviceCache) FindByName(name string) (Entry, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	var best Entry
	var found bool
	for _, entry := range c.Devices {
		if entry.DisplayName != name {
			continue
		}
		if !found || entry.LastSeen.After(best.LastSeen) {
			best = entry
			found = true
		}
	}
	return best, found
}
