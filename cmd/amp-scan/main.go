// Command amp-scan lists nearby amplifiers advertising the Sinilink audio service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/sinilink-community/amplifier-command/internal/log"
	"github.com/sinilink-community/amplifier-command/pkg/cache"
	"github.com/sinilink-community/amplifier-command/pkg/cli"
	"github.com/sinilink-community/amplifier-command/pkg/connector/ble"
)

var (
	scanTimeout = flag.Duration("timeout", 10*time.Second, "Stop scanning after this long")
	limit       = flag.Int("limit", 0, "Stop after finding this many amplifiers (0 for no limit)")
	debug       = flag.Bool("debug", false, "Enable verbose debugging messages")
)

func main() {
	status := 1
	defer func() {
		os.Exit(status)
	}()

	config, err := cli.NewConfig(cli.FlagCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %s\n", err)
		return
	}
	flag.StringVar(&config.AdapterID, "bt-adapter", "", "`ID` of the Bluetooth adapter to use. Defaults to $AMP_ADAPTER_ID.")
	config.RegisterCommandLineFlags()
	flag.Parse()
	if *debug {
		log.SetLevel(log.LevelDebug)
	}
	config.ReadFromEnvironment()
	if config.AdapterID == "" {
		config.AdapterID = os.Getenv(cli.EnvAmpAdapterID)
	}

	adapter, err := config.Adapter()
	if err != nil {
		log.Error("Failed to initialize BLE adapter: %s", err)
		return
	}
	defer config.CloseAdapter()

	ctx, cancel := context.WithTimeout(context.Background(), *scanTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log.Info("Scanning for amplifiers...")
	beacons, err := ble.ScanAmplifiers(ctx, adapter, *limit)
	if err != nil {
		log.Error("Scan failed: %s", err)
		return
	}

	if len(beacons) == 0 {
		fmt.Println("No amplifiers found.")
		status = 0
		return
	}

	fmt.Printf("%-20s %-24s %s\n", "ADDRESS", "NAME", "RSSI")
	for _, beacon := range beacons {
		name := beacon.LocalName
		if name == "" {
			name = "-"
		}
		fmt.Printf("%-20s %-24s %d\n", beacon.Address, name, beacon.RSSI)
	}

	if config.CacheFilename != "" {
		if err := recordBeacons(config.CacheFilename, beacons); err != nil {
			log.Error("Error updating device cache: %s", err)
			return
		}
	}
	status = 0
}

func recordBeacons(filename string, beacons []*ble.Beacon) error {
	devices, err := cache.ImportFromFile(filename)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		devices = cache.New(0)
	}
	for _, beacon := range beacons {
		if err := devices.Update(beacon.Address, beacon.LocalName); err != nil {
			return err
		}
	}
	return devices.ExportToFile(filename)
}
