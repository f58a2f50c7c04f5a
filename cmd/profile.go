package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"serial-monitor/pkg/app"
	"serial-monitor/pkg/profile"
	"serial-monitor/pkg/serial"
)

var (
	// Profile save flags
	profilePort     string
	profileBaudRate int
	profileDataBits int
	profileStopBits int
	profileParity   string
)

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved line configurations",
	Long: `Manage saved line configurations.

A profile stores a device and its line parameters under a name so
frequently used setups can be recalled without reconfiguring the
monitor by hand.`,
}

// saveProfileCmd saves a profile
var saveProfileCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a line configuration",
	Long: `Save a device and its line parameters under a name.

Example:
  serial-monitor profile save mydevice -p /dev/ttyUSB0 -b 115200`,
	Args: cobra.ExactArgs(1),
	Run:  runSaveProfile,
}

// loadProfileCmd loads a profile and starts the monitor
var loadProfileCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Start the monitor with a saved configuration",
	Long: `Load a saved profile and start the monitor with its device and
line parameters preselected.

Example:
  serial-monitor profile load mydevice`,
	Args: cobra.ExactArgs(1),
	Run:  runLoadProfile,
}

// listProfileCmd lists all profiles
var listProfileCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved profiles",
	Long:  `Display a list of all saved line configurations.`,
	Run:   runListProfiles,
}

// deleteProfileCmd deletes a profile
var deleteProfileCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Long: `Delete a saved line configuration.

Example:
  serial-monitor profile delete mydevice`,
	Aliases: []string{"rm", "remove"},
	Args:    cobra.ExactArgs(1),
	Run:     runDeleteProfile,
}

// showProfileCmd shows one profile in detail
var showProfileCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show details of a saved profile",
	Long: `Display detailed information about a saved profile.

Example:
  serial-monitor profile show mydevice`,
	Args: cobra.ExactArgs(1),
	Run:  runShowProfile,
}

func init() {
	profileCmd.AddCommand(saveProfileCmd)
	profileCmd.AddCommand(loadProfileCmd)
	profileCmd.AddCommand(listProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(showProfileCmd)

	saveProfileCmd.Flags().StringVarP(&profilePort, "port", "p", "", "serial device")
	saveProfileCmd.Flags().IntVarP(&profileBaudRate, "baud", "b", 9600, "baud rate")
	saveProfileCmd.Flags().IntVarP(&profileDataBits, "data", "d", 8, "data bits")
	saveProfileCmd.Flags().IntVarP(&profileStopBits, "stop", "s", 1, "stop bits")
	saveProfileCmd.Flags().StringVar(&profileParity, "parity", "none", "parity (none, odd, even)")
	saveProfileCmd.MarkFlagRequired("port")
}

func runSaveProfile(cmd *cobra.Command, args []string) {
	name := args[0]

	cfg := serial.PortConfig{
		Device:   profilePort,
		BaudRate: profileBaudRate,
		DataBits: profileDataBits,
		Parity:   profileParity,
		StopBits: profileStopBits,
	}

	store := profile.NewStore("")
	if err := store.Save(name, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving profile: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Profile '%s' saved.\n", name)
	fmt.Printf("  Device:    %s\n", cfg.Device)
	fmt.Printf("  Baud Rate: %d\n", cfg.BaudRate)
	fmt.Printf("  Data Bits: %d\n", cfg.DataBits)
	fmt.Printf("  Parity:    %s\n", cfg.Parity)
	fmt.Printf("  Stop Bits: %d\n", cfg.StopBits)
}

func runLoadProfile(cmd *cobra.Command, args []string) {
	name := args[0]

	store := profile.NewStore("")
	cfg, err := store.Load(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile '%s': %v\n", name, err)
		os.Exit(1)
	}

	if err := app.RunWithLine(cfg, debugMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runListProfiles(cmd *cobra.Command, args []string) {
	store := profile.NewStore("")
	profiles, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing profiles: %v\n", err)
		os.Exit(1)
	}

	if len(profiles) == 0 {
		fmt.Println("No saved profiles found.")
		fmt.Println("\nUse 'serial-monitor profile save <name>' to save one.")
		return
	}

	fmt.Printf("Found %d saved profile(s):\n\n", len(profiles))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDEVICE\tBAUD\tLAST USED\tCREATED")
	fmt.Fprintln(w, "----\t------\t----\t---------\t-------")

	for _, p := range profiles {
		lastUsed := "Never"
		if !p.LastUsedAt.IsZero() {
			lastUsed = p.LastUsedAt.Format("2006-01-02 15:04")
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			p.Name,
			p.Config.Device,
			p.Config.BaudRate,
			lastUsed,
			p.CreatedAt.Format("2006-01-02 15:04"))
	}

	w.Flush()

	fmt.Println("\nUse 'serial-monitor profile load <name>' to start the monitor with one.")
}

func runDeleteProfile(cmd *cobra.Command, args []string) {
	name := args[0]

	store := profile.NewStore("")
	if err := store.Delete(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting profile '%s': %v\n", name, err)
		os.Exit(1)
	}

	fmt.Printf("Profile '%s' deleted.\n", name)
}

func runShowProfile(cmd *cobra.Command, args []string) {
	name := args[0]

	store := profile.NewStore("")
	p, err := store.Get(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Profile: %s\n", p.Name)
	fmt.Printf("  Device:    %s\n", p.Config.Device)
	fmt.Printf("  Baud Rate: %d\n", p.Config.BaudRate)
	fmt.Printf("  Data Bits: %d\n", p.Config.DataBits)
	fmt.Printf("  Parity:    %s\n", p.Config.Parity)
	fmt.Printf("  Stop Bits: %d\n", p.Config.StopBits)
	fmt.Println()
	fmt.Printf("  Created:   %s\n", p.CreatedAt.Format(time.RFC3339))
	if !p.LastUsedAt.IsZero() {
		fmt.Printf("  Last Used: %s\n", p.LastUsedAt.Format(time.RFC3339))
	}
}
