package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"serial-monitor/pkg/app"
)

var (
	// Root command flags
	debugMode bool

	// Root command
	rootCmd = &cobra.Command{
		Use:               "serial-monitor",
		Short:             "An interactive serial port monitor",
		Long: `An interactive monitor for exercising an RS-232/UART serial link.

The monitor enumerates the host's serial ports, opens one with a chosen
line configuration, transmits user-entered frames as UTF-8 text or hex
byte strings, and renders inbound bytes in one or more encodings.

On POSIX systems the invoking user must belong to the group the OS
grants serial device access to (e.g. 'uucp' or 'dialout').`,
		Version:           "1.0.0",
		Run:               runMonitor,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "write a debug log file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(profileCmd)
}

// runMonitor starts the interactive monitor.
func runMonitor(cmd *cobra.Command, args []string) {
	if err := app.RunInteractive(debugMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
