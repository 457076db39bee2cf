package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wlmouse/beastx/internal/config"
	"github.com/wlmouse/beastx/internal/dispatch"
	"github.com/wlmouse/beastx/internal/logging"
	"github.com/wlmouse/beastx/internal/transport"
)

// Configuration command flags
var (
	settingsPath string
	outputFormat string
	sendTimeout  int
)

func init() {
	// Common flags (persistent on root)
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "Settings file path (default: per-user config directory)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")
	rootCmd.PersistentFlags().IntVar(&sendTimeout, "timeout", 3, "Per-report send timeout in seconds")

	// Add subcommands directly to root
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(dpiCmd)
	rootCmd.AddCommand(applyCmd)
}

// openStore initializes logging and loads the settings file.
func openStore() (*config.Store, error) {
	if err := logging.InitializeFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	store, err := config.Open(settingsPath, logging.GetLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	return store, nil
}

// withDispatcher runs fn against a live dispatcher, then drains and prints
// every hardware outcome. The returned error reflects fn's own failure or,
// failing that, any report that did not reach the mouse.
func withDispatcher(fn func(*dispatch.Dispatcher) error) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if err := transport.Init(); err != nil {
		return fmt.Errorf("failed to initialize HID support: %w", err)
	}
	defer transport.Exit()
	defer logging.Sync()

	tr := transport.New(logging.GetLogger(),
		transport.WithSendTimeout(time.Duration(sendTimeout)*time.Second))
	d := dispatch.New(logging.GetLogger(), store, tr)
	d.AutoConnect()

	fnErr := fn(d)
	d.Close()

	sendFailed := false
	for r := range d.Results() {
		if r.Ok() {
			fmt.Printf("✓ %s\n", r.Description)
		} else {
			sendFailed = true
			fmt.Printf("✗ %s: %v\n", r.Description, r.Err)
		}
	}

	if fnErr != nil {
		return fnErr
	}
	if sendFailed {
		fmt.Println("\nSettings were saved but could not be applied to the mouse.")
		fmt.Println("Troubleshooting:")
		fmt.Println("  - Ensure the mouse or its dongle is plugged in")
		fmt.Println("  - On Linux, check hidraw permissions (udev rules)")
		fmt.Println("  - Run 'beastx-cfg apply' to retry once the mouse is back")
		return fmt.Errorf("device update failed")
	}
	return nil
}

// statusCmd reports device presence and the current settings summary
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show device presence and settings summary",
	Long: `Check whether a Beast X is reachable over USB HID and print a
one-line summary of the stored settings.

The mouse never reports its state back, so the summary reflects the local
settings file, not what the hardware is currently using. Run 'apply' to
push the stored settings to the mouse.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if err := transport.Init(); err != nil {
		return fmt.Errorf("failed to initialize HID support: %w", err)
	}
	defer transport.Exit()
	defer logging.Sync()

	tr := transport.New(logging.GetLogger(),
		transport.WithSendTimeout(time.Duration(sendTimeout)*time.Second))

	if err := tr.Connect(); err != nil {
		fmt.Println("Device:   not detected")
		if transport.IsOpenFailed(err) {
			fmt.Printf("          (%v)\n", err)
		}
	} else {
		fmt.Printf("Device:   connected (%s)\n", tr.Path())
		tr.Disconnect()
	}

	fmt.Printf("Settings: %s\n", store.Config().Summary())
	fmt.Printf("File:     %s\n", store.Path())
	return nil
}

// showCmd displays the stored configuration
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored mouse configuration",
	Long: `Display the stored Beast X configuration: DPI profiles, the active
profile, polling rate, and lift-off distance.`,
	Example: `  # Full output
  beastx-cfg show

  # Compact output format
  beastx-cfg show --format compact

  # JSON output for scripting
  beastx-cfg show --format json`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	cfg := store.Config()

	switch outputFormat {
	case "compact":
		fmt.Print(cfg.FormatCompact())
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "detailed":
		fmt.Println(cfg.FormatDetailed())
	default:
		return fmt.Errorf("unknown format %q (expected detailed, compact, or json)", outputFormat)
	}
	return nil
}

// setCmd groups the hardware-backed setting commands
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change a mouse setting",
}

func init() {
	setCmd.AddCommand(setPollRateCmd)
	setCmd.AddCommand(setLodCmd)
}

var setPollRateCmd = &cobra.Command{
	Use:   "poll-rate <hz>",
	Short: "Set the polling rate",
	Long: `Set the USB polling rate in Hz.

Supported rates: 125, 250, 500, 1000, 2000, 4000.
The new rate is saved locally and pushed to the mouse immediately.`,
	Example: `  beastx-cfg set poll-rate 1000
  beastx-cfg set poll-rate 4000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hz, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid polling rate %q: expected a number", args[0])
		}
		return withDispatcher(func(d *dispatch.Dispatcher) error {
			return d.SetPollRate(hz)
		})
	},
}

var setLodCmd = &cobra.Command{
	Use:   "lod <distance>",
	Short: "Set the lift-off distance",
	Long: `Set the sensor lift-off distance.

Accepted values: 1mm or 2mm.
The new distance is saved locally and pushed to the mouse immediately.`,
	Example: `  beastx-cfg set lod 1mm
  beastx-cfg set lod 2mm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var code int
		switch args[0] {
		case "1mm", "1":
			code = 0
		case "2mm", "2":
			code = 1
		default:
			return fmt.Errorf("invalid lift-off distance %q (expected 1mm or 2mm)", args[0])
		}
		return withDispatcher(func(d *dispatch.Dispatcher) error {
			return d.SetLiftOff(code)
		})
	},
}

// dpiCmd groups the DPI profile commands. Profiles are addressed with
// 1-based positions on the command line, matching the on-mouse indicator.
var dpiCmd = &cobra.Command{
	Use:   "dpi",
	Short: "Manage DPI profiles",
	Long: `Manage the stored DPI profile list.

DPI values are clamped to 50-26000 and rounded to the nearest multiple
of 50. Profile changes are store-only: the sensor reads the active profile
from onboard memory.`,
	RunE: runDpiList,
}

func init() {
	dpiCmd.AddCommand(dpiListCmd)
	dpiCmd.AddCommand(dpiAddCmd)
	dpiCmd.AddCommand(dpiRemoveCmd)
	dpiCmd.AddCommand(dpiSetCmd)
	dpiCmd.AddCommand(dpiActiveCmd)
}

var dpiListCmd = &cobra.Command{
	Use:   "list",
	Short: "List DPI profiles",
	RunE:  runDpiList,
}

func runDpiList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	fmt.Print(store.Config().FormatDPIProfiles())
	return nil
}

// parseProfilePosition converts a 1-based command-line position into a
// 0-based profile index.
func parseProfilePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid profile position %q: expected a number", arg)
	}
	return pos - 1, nil
}

var dpiAddCmd = &cobra.Command{
	Use:     "add <dpi>",
	Short:   "Add a DPI profile",
	Example: `  beastx-cfg dpi add 6400`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid DPI value %q: expected a number", args[0])
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.AddProfile(value); err != nil {
			return err
		}
		fmt.Print(store.Config().FormatDPIProfiles())
		return nil
	},
}

var dpiRemoveCmd = &cobra.Command{
	Use:     "remove <position>",
	Short:   "Remove a DPI profile",
	Example: `  beastx-cfg dpi remove 3`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseProfilePosition(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.RemoveProfile(idx); err != nil {
			return err
		}
		fmt.Print(store.Config().FormatDPIProfiles())
		return nil
	},
}

var dpiSetCmd = &cobra.Command{
	Use:     "set <position> <dpi>",
	Short:   "Change a DPI profile's sensitivity",
	Example: `  beastx-cfg dpi set 2 1600`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseProfilePosition(args[0])
		if err != nil {
			return err
		}
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid DPI value %q: expected a number", args[1])
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.SetProfileValue(idx, value); err != nil {
			return err
		}
		fmt.Print(store.Config().FormatDPIProfiles())
		return nil
	},
}

var dpiActiveCmd = &cobra.Command{
	Use:     "active <position>",
	Short:   "Select the active DPI profile",
	Example: `  beastx-cfg dpi active 1`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseProfilePosition(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.SetActiveProfile(idx); err != nil {
			return err
		}
		fmt.Print(store.Config().FormatDPIProfiles())
		return nil
	},
}

// applyCmd pushes the stored settings to the mouse
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Push the stored settings to the mouse",
	Long: `Send every hardware-backed setting (polling rate and lift-off
distance) from the settings file to the mouse.

Useful after plugging the mouse back in, or when an earlier change was
saved but failed to reach the device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDispatcher(func(d *dispatch.Dispatcher) error {
			return d.Apply()
		})
	},
}
