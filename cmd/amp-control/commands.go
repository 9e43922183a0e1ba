package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sinilink-community/amplifier-command/pkg/amplifier"
	"github.com/sinilink-community/amplifier-command/pkg/protocol"
)

var (
	ErrCommandLineArgs = errors.New("invalid command line arguments")
	ErrInvalidVolume   = errors.New("invalid volume")
	ErrUnknownCommand  = errors.New("unrecognized command")
)

type Argument struct {
	name string
	help string
}

type Handler func(ctx context.Context, amp *amplifier.Amplifier, args map[string]string) error

type Command struct {
	help     string
	args     []Argument
	optional []Argument
	handler  Handler
}

// GetVolume parses a volume level from the command line. It accepts a raw level in [1, 31] or a
// percentage such as "65%", which is mapped onto the level range.
func GetVolume(volumeStr string) (uint8, error) {
	if percentStr, ok := strings.CutSuffix(volumeStr, "%"); ok {
		percent, err := strconv.ParseFloat(percentStr, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidVolume, err)
		}
		if percent < 0 || percent > 100 {
			return 0, fmt.Errorf("%w: percentage outside [0, 100]", ErrInvalidVolume)
		}
		level := int(math.Round(percent / 100 * float64(protocol.VolumeMax)))
		if level < int(protocol.VolumeMin) {
			level = int(protocol.VolumeMin)
		}
		return uint8(level), nil
	}
	level, err := strconv.Atoi(volumeStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidVolume, err)
	}
	if level < int(protocol.VolumeMin) || level > int(protocol.VolumeMax) {
		return 0, fmt.Errorf("%w: level outside [%d, %d]", ErrInvalidVolume, protocol.VolumeMin, protocol.VolumeMax)
	}
	return uint8(level), nil
}

// GetSource parses an input source from the command line, accepting a source name (e.g.,
// "bluetooth") or a raw selector code (e.g., "0x14").
func GetSource(sourceStr string) (amplifier.InputSource, uint8, error) {
	if source, ok := amplifier.SourceFromName(sourceStr); ok {
		code, _ := source.Code()
		return source, code, nil
	}
	if code, err := strconv.ParseUint(sourceStr, 0, 8); err == nil {
		return amplifier.SourceFromCode(uint8(code)), uint8(code), nil
	}
	var names []string
	for _, source := range amplifier.Sources() {
		names = append(names, source.String())
	}
	return amplifier.SourceUnknown, 0, fmt.Errorf("%w: unrecognized source (valid names: %s)", ErrCommandLineArgs, strings.Join(names, ", "))
}

func formatSnapshot(s amplifier.Snapshot) string {
	volume := "?"
	if s.VolumeKnown {
		volume = strconv.Itoa(int(s.Volume))
	}
	source := "?"
	if s.InputKnown {
		source = s.Input().String()
	}
	availability := "online"
	if !s.Available {
		availability = "offline"
	}
	return fmt.Sprintf("volume %s/%d source %s (%s)", volume, protocol.VolumeMax, source, availability)
}

func execute(ctx context.Context, amp *amplifier.Amplifier, args []string) error {
	if len(args) == 0 {
		return errors.New("missing COMMAND")
	}

	info, ok := commands[args[0]]
	if !ok {
		return ErrUnknownCommand
	}

	var err error
	if len(args)-1 < len(info.args) || len(args)-1 > len(info.args)+len(info.optional) {
		writeErr("Invalid number of command line arguments: %d (%d required, %d optional).", len(args), len(info.args), len(info.optional))
		err = ErrCommandLineArgs
	} else {
		keywords := make(map[string]string)
		for i, argInfo := range info.args {
			keywords[argInfo.name] = args[i+1]
		}
		index := len(info.args) + 1
		for _, argInfo := range info.optional {
			if index >= len(args) {
				break
			}
			keywords[argInfo.name] = args[index]
			index++
		}
		err = info.handler(ctx, amp, keywords)
	}

	// Print command-specific help
	if errors.Is(err, ErrCommandLineArgs) {
		info.Usage(args[0])
	}
	return err
}

func (c *Command) Usage(name string) {
	fmt.Printf("Usage: %s", name)
	maxLength := 0
	for _, arg := range c.args {
		fmt.Printf(" %s", arg.name)
		if len(arg.name) > maxLength {
			maxLength = len(arg.name)
		}
	}
	if len(c.optional) > 0 {
		fmt.Printf(" [")
	}
	for _, arg := range c.optional {
		fmt.Printf(" %s", arg.name)
		if len(arg.name) > maxLength {
			maxLength = len(arg.name)
		}
	}
	if len(c.optional) > 0 {
		fmt.Printf(" ]")
	}
	fmt.Printf("\n%s\n", c.help)
	maxLength++
	for _, arg := range c.args {
		fmt.Printf("    %s:%s%s\n", arg.name, strings.Repeat(" ", maxLength-len(arg.name)), arg.help)
	}
	for _, arg := range c.optional {
		fmt.Printf("    %s:%s%s\n", arg.name, strings.Repeat(" ", maxLength-len(arg.name)), arg.help)
	}
}

var commands = map[string]*Command{
	"status": &Command{
		help: "Fetch and print amplifier status",
		handler: func(ctx context.Context, amp *amplifier.Amplifier, args map[string]string) error {
			snapshot, err := amplifier.NewCoordinator(amp).Refresh(ctx)
			if err != nil {
				return err
			}
			fmt.Println(formatSnapshot(snapshot))
			return nil
		},
	},
	"volume": &Command{
		help: "Set volume LEVEL",
		args: []Argument{
			Argument{name: "LEVEL", help: "Volume level (1-31) or percentage (e.g., 65%)"},
		},
		handler: func(ctx context.Context, amp *amplifier.Amplifier, args map[string]string) error {
			volume, err := GetVolume(args["LEVEL"])
			if err != nil {
				return err
			}
			return amp.SetVolume(ctx, volume)
		},
	},
	"volume-up": &Command{
		help: "Raise volume one step",
		handler: func(ctx context.Context, amp *amplifier.Amplifier, args map[string]string) error {
			return amp.VolumeUp(ctx)
		},
	},
	"volume-down": &Command{
		help: "Lower volume one step",
		handler: func(ctx context.Context, amp *amplifier.Amplifier, args map[string]string) error {
			return amp.VolumeDown(ctx)
		},
	},
	"source": &Command{
		help: "Switch amplifier input to SOURCE",
		args: []Argument{
			Argument{name: "SOURCE", help: "One of: aux, bt, sndcard, usb; or a raw selector code (e.g., 0x14)"},
		},
		handler: func(ctx context.Context, amp *amplifier.Amplifier, args map[string]string) error {
			source, code, err := GetSource(args["SOURCE"])
			if err != nil {
				return err
			}
			if source == amplifier.SourceUnknown {
				return amp.SetInput(ctx, code)
			}
			return amp.SetSource(ctx, source)
		},
	},
	"sources": &Command{
		help: "List selectable input sources",
		handler: func(ctx context.Context, amp *amplifier.Amplifier, args map[string]string) error {
			for _, source := range amplifier.Sources() {
				code, _ := source.Code()
				fmt.Printf("%-10s 0x%02x\n", source, code)
			}
			return nil
		},
	},
	"ping": &Command{
		help: "Measure the round trip of a status refresh",
		handler: func(ctx context.Context, amp *amplifier.Amplifier, args map[string]string) error {
			start := time.Now()
			if _, _, err := amp.RefreshVolume(ctx); err != nil {
				return err
			}
			fmt.Printf("ok (%s)\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	},
	"watch": &Command{
		help: "Print status updates as they arrive, polling every INTERVAL",
		optional: []Argument{
			Argument{name: "INTERVAL", help: "Polling interval (e.g., 5s). Defaults to 5s."},
		},
		handler: func(ctx context.Context, amp *amplifier.Amplifier, args map[string]string) error {
			interval := 5 * time.Second
			if intervalStr, ok := args["INTERVAL"]; ok {
				var err error
				if interval, err = time.ParseDuration(intervalStr); err != nil {
					return fmt.Errorf("%w: %s", ErrCommandLineArgs, err)
				}
				if interval <= 0 {
					return fmt.Errorf("%w: interval must be positive", ErrCommandLineArgs)
				}
			}
			watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			cancel := amp.Subscribe(func(s amplifier.Snapshot) {
				fmt.Println(formatSnapshot(s))
			})
			defer cancel()
			fmt.Println(formatSnapshot(amp.State()))
			err := amplifier.NewCoordinator(amp).Run(watchCtx, interval)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		},
	},
}
