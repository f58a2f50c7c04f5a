package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"serial-monitor/pkg/serial"
)

// Runner provides the high-level entry point used by the CLI: it
// enumerates ports, builds the application and handles signals.
type Runner struct {
	config Config
}

// NewRunner enumerates the attached serial devices and prepares the
// application configuration. Enumeration failure here is the only
// fatal error of the monitor.
func NewRunner(debugMode bool) (*Runner, error) {
	ports, err := serial.ListPorts()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	return &Runner{
		config: Config{
			Ports:     ports,
			DebugMode: debugMode,
		},
	}, nil
}

// Run starts the monitor and blocks until it exits.
func (r *Runner) Run() error {
	app, err := NewApplication(r.config)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		app.Stop()
	}()

	return app.Run()
}

// RunInteractive enumerates ports and runs the monitor in one call.
func RunInteractive(debugMode bool) error {
	runner, err := NewRunner(debugMode)
	if err != nil {
		return err
	}
	return runner.Run()
}

// RunWithLine runs the monitor with a preselected line configuration,
// e.g. one loaded from a saved profile.
func RunWithLine(line serial.PortConfig, debugMode bool) error {
	runner, err := NewRunner(debugMode)
	if err != nil {
		return err
	}
	runner.config.Line = &line
	return runner.Run()
}
