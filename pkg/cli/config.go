/*
Package cli facilitates building command-line applications for controlling amplifiers. It defines a
[Config] type that can be used to register common command-line flags (using the Golang flag package)
and environment variable equivalents.

# Examples

	import flag

	config, err := cli.NewConfig(cli.FlagAll)
	if err != nil {
		panic(err)
	}
	config.RegisterCommandLineFlags() // Adds command-line flags for device address, cache file, etc.
	flag.Parse()
	config.ReadFromEnvironment()      // Fills in missing fields using environment variables

	// Initializes the amplifier session from a combination of command-line flags and environment
	// variables, scanning for the device if no address is known.
	amp, err := config.Connect(context.Background())
	if err != nil {
		panic(err)
	}
	defer amp.Disconnect()
	defer config.UpdateCache(amp.Address())

Alternatively, you can use a [Flag] mask to control what [Config] fields are populated. Note that
config.Flags must be set before calling [flag.Parse] or [Config.ReadFromEnvironment]:

	config, err = cli.NewConfig(cli.FlagDevice) // config.Connect() will not touch the device cache.
*/
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/sinilink-community/amplifier-command/internal/log"
	"github.com/sinilink-community/amplifier-command/pkg/amplifier"
	"github.com/sinilink-community/amplifier-command/pkg/cache"
	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
)

// Environment variable names used by [Config.ReadFromEnvironment] to set common parameters.
const (
	EnvAmpAddress   = "AMP_ADDRESS"
	EnvAmpName      = "AMP_NAME"
	EnvAmpAdapterID = "AMP_ADAPTER_ID"
	EnvAmpCacheFile = "AMP_CACHE_FILE"
)

// DefaultConnectTimeout bounds scanning plus connecting when no explicit timeout flag is given.
const DefaultConnectTimeout = 30 * time.Second

// Flag controls what options should be scanned from the command line and/or environment variables.
type Flag int

func (f Flag) isSet(other Flag) bool {
	return (f & other) == other
}

const (
	FlagDevice Flag = 1 // Enable device address/name options.
	FlagCache  Flag = 2 // Enable device cache options.
	FlagAll    Flag = FlagDevice | FlagCache
)

var (
	ErrNoDeviceSpecified = errors.New("device address or name not provided")
)

// Config fields determine how a client finds and connects to an amplifier.
type Config struct {
	Flags          Flag   // Controls which set of environment variables/CLI flags to use.
	Address        string // BLE address of the amplifier.
	Name           string // Advertised local name, used when no address is known.
	AdapterID      string // Bluetooth adapter identifier (e.g., hci0). Optional.
	CacheFilename  string
	ConnectTimeout time.Duration

	devices *cache.DeviceCache
	adapter ble.Adapter
}

func NewConfig(flags Flag) (*Config, error) {
	return &Config{
		Flags:          flags,
		ConnectTimeout: DefaultConnectTimeout,
	}, nil
}

func (c *Config) RegisterCommandLineFlags() {
	if c.Flags.isSet(FlagDevice) {
		flag.StringVar(&c.Address, "address", "", "BLE `address` of the amplifier. Defaults to $AMP_ADDRESS.")
		flag.StringVar(&c.Name, "name", "", "Advertised local `name` of the amplifier. Defaults to $AMP_NAME.")
		flag.StringVar(&c.AdapterID, "bt-adapter", "", "`ID` of the Bluetooth adapter to use. Defaults to $AMP_ADAPTER_ID.")
		flag.DurationVar(&c.ConnectTimeout, "connect-timeout", DefaultConnectTimeout, "Maximum `duration` to spend scanning and connecting.")
	}
	if c.Flags.isSet(FlagCache) {
		flag.StringVar(&c.CacheFilename, "device-cache", "", "Load known devices from `file`. Defaults to $AMP_CACHE_FILE.")
	}
}

// ReadFromEnvironment populates c using environment variables. Values that are already populated
// are not overwritten.
//
// Calling ReadFromEnvironment after flag.Parse() (or other initialization method) will prevent the
// environment from overriding explicit command-line parameters and avoid potentially misleading
// debug log messages.
func (c *Config) ReadFromEnvironment() {
	if c.Flags.isSet(FlagDevice) {
		if c.Address == "" {
			c.Address = os.Getenv(EnvAmpAddress)
			log.Debug("Set address to '%s'", c.Address)
		}
		if c.Name == "" {
			c.Name = os.Getenv(EnvAmpName)
			log.Debug("Set name to '%s'", c.Name)
		}
		if c.AdapterID == "" {
			c.AdapterID = os.Getenv(EnvAmpAdapterID)
			log.Debug("Set adapter ID to '%s'", c.AdapterID)
		}
	}
	if c.Flags.isSet(FlagCache) {
		if c.CacheFilename == "" {
			c.CacheFilename = os.Getenv(EnvAmpCacheFile)
			log.Debug("Set device cache file to '%s'", c.CacheFilename)
		}
	}
}

// UpdateCache records address in c.CacheFilename, marking it as seen now.
//
// If c.CacheFilename is not set, then this method does nothing.
func (c *Config) UpdateCache(address string) {
	if c.CacheFilename == "" || address == "" {
		return
	}
	if err := c.loadCache(); err != nil {
		log.Error("Error loading cache: %s", err)
		return
	}
	if err := c.devices.Update(address, c.Name); err != nil {
		log.Error("Error updating cache: %s", err)
		return
	}
	if err := c.devices.ExportToFile(c.CacheFilename); err != nil {
		log.Error("Error updating cache: %s", err)
	}
}

func (c *Config) loadCache() error {
	if c.devices != nil || c.CacheFilename == "" {
		return nil
	}
	log.Debug("Loading cache from %s...", c.CacheFilename)
	var err error
	c.devices, err = cache.ImportFromFile(c.CacheFilename)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load device cache: %s", err)
		}
		// Create a new cache if one couldn't be loaded from the file
		c.devices = cache.New(0)
	}
	return nil
}

// Adapter returns the Bluetooth adapter selected by c, opening it on first use. The backend is
// chosen per platform; see [newAdapter].
func (c *Config) Adapter() (ble.Adapter, error) {
	if c.adapter != nil {
		return c.adapter, nil
	}
	adapter, err := newAdapter(c.AdapterID)
	if err != nil {
		return nil, err
	}
	c.adapter = adapter
	return adapter, nil
}

// CloseAdapter releases the Bluetooth adapter, if one was opened.
func (c *Config) CloseAdapter() {
	if c.adapter != nil {
		if err := c.adapter.Close(); err != nil {
			log.Warning("Error closing Bluetooth adapter: %s", err)
		}
		c.adapter = nil
	}
}

// resolveAddress determines the address to connect to, consulting the device cache and then
// scanning by advertised name when no explicit address was given.
func (c *Config) resolveAddress(ctx context.Context, adapter ble.Adapter) (string, error) {
	if c.Address != "" {
		return c.Address, nil
	}
	if c.Name == "" {
		return "", ErrNoDeviceSpecified
	}
	if c.Flags.isSet(FlagCache) {
		if err := c.loadCache(); err != nil {
			return "", err
		}
		if c.devices != nil {
			if entry, ok := c.devices.FindByName(c.Name); ok {
				log.Debug("Found cached address %s for '%s'", entry.Address, c.Name)
				return entry.Address, nil
			}
		}
	}
	log.Info("Scanning for amplifier '%s'...", c.Name)
	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var lock sync.Mutex
	var address string
	err := adapter.ScanAmplifiers(scanCtx, func(beacon *ble.Beacon) {
		lock.Lock()
		defer lock.Unlock()
		if address == "" && beacon.LocalName == c.Name {
			address = beacon.Address
			cancel()
		}
	})
	if err != nil && scanCtx.Err() == nil {
		return "", err
	}

	lock.Lock()
	defer lock.Unlock()
	if address == "" {
		return "", fmt.Errorf("no amplifier advertising as '%s' found", c.Name)
	}
	return address, nil
}

// Connect establishes a session with the configured amplifier.
//
// The amplifier is located by address if one was provided, otherwise by scanning for its advertised
// name. The returned session is connected and has fetched an initial status report.
func (c *Config) Connect(ctx context.Context) (*amplifier.Amplifier, error) {
	adapter, err := c.Adapter()
	if err != nil {
		return nil, err
	}

	if c.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.ConnectTimeout)
		defer cancel()
	}

	address, err := c.resolveAddress(ctx, adapter)
	if err != nil {
		return nil, err
	}

	log.Info("Connecting to %s...", address)
	amp := amplifier.New(ble.NewConnector(adapter), address)
	if err := amp.Connect(ctx); err != nil {
		return nil, err
	}
	return amp, nil
}
