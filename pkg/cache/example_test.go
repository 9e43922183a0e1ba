package cache_test

import (
	"fmt"

	"github.com/sinilink-community/amplifier-command/pkg/cache"
)

func Example() {
	const cacheFilename = "my_cache.json"

	// Try to load cache from disk if it doesn't already exist
	var myCache *cache.DeviceCache
	var err error
	if myCache, err = cache.ImportFromFile(cacheFilename); err != nil {
		myCache = cache.New(5) // Remember up to five amplifiers
	}

	address := "AA:BB:CC:DD:EE:FF"
	if entry, ok := myCache.FindByName("Living room"); ok {
		address = entry.Address
	}

	// ... connect to address and interact with the amplifier ...

	if err := myCache.Update(address, "Living room"); err != nil {
		fmt.Printf("Error updating device cache: %s\n", err)
		return
	}
	myCache.ExportToFile(cacheFilename)
}
