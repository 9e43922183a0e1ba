package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/sinilink-community/amplifier-command/pkg/cache"
	"github.com/sinilink-community/amplifier-command/pkg/cli"
)

func TestReadFromEnvironment(t *testing.T) {
	t.Setenv(cli.EnvAmpAddress, "AA:BB:CC:DD:EE:FF")
	t.Setenv(cli.EnvAmpName, "Living room")
	t.Setenv(cli.EnvAmpCacheFile, "devices.json")

	config, err := cli.NewConfig(cli.FlagAll)
	if err != nil {
		t.Fatal(err)
	}
	config.ReadFromEnvironment()
	if config.Address != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("address not read from environment: %q", config.Address)
	}
	if config.Name != "Living room" {
		t.Errorf("name not read from environment: %q", config.Name)
	}
	if config.CacheFilename != "devices.json" {
		t.Errorf("cache file not read from environment: %q", config.CacheFilename)
	}
}

func TestEnvironmentDoesNotOverrideFlags(t *testing.T) {
	t.Setenv(cli.EnvAmpAddress, "11:22:33:44:55:66")

	config, err := cli.NewConfig(cli.FlagDevice)
	if err != nil {
		t.Fatal(err)
	}
	config.Address = "AA:BB:CC:DD:EE:FF"
	config.ReadFromEnvironment()
	if config.Address != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("environment overrode explicit address: %q", config.Address)
	}
}

func TestFlagMaskLimitsEnvironment(t *testing.T) {
	t.Setenv(cli.EnvAmpCacheFile, "devices.json")

	config, err := cli.NewConfig(cli.FlagDevice)
	if err != nil {
		t.Fatal(err)
	}
	config.ReadFromEnvironment()
	if config.CacheFilename != "" {
		t.Errorf("cache file populated without FlagCache: %q", config.CacheFilename)
	}
}

func TestUpdateCacheWritesFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "devices.json")

	config, err := cli.NewConfig(cli.FlagAll)
	if err != nil {
		t.Fatal(err)
	}
	config.CacheFilename = filename
	config.Name = "Workbench"
	config.UpdateCache("AA:BB:CC:DD:EE:FF")

	devices, err := cache.ImportFromFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	entry, ok := devices.GetEntry("AA:BB:CC:DD:EE:FF")
	if !ok {
		t.Fatal("cache file did not contain updated entry")
	}
	if entry.DisplayName != "Workbench" {
		t.Errorf("unexpected display name: %q", entry.DisplayName)
	}
}

func TestUpdateCacheWithoutFileIsNoOp(t *testing.T) {
	config, err := cli.NewConfig(cli.FlagAll)
	if err != nil {
		t.Fatal(err)
	}
	config.UpdateCache("AA:BB:CC:DD:EE:FF") // Should not panic or create files.
}
