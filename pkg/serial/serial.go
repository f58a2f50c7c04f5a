// Package serial provides the serial port layer: line configuration,
// the port capability interface consumed by the session controller,
// and the go.bug.st/serial driver binding.
package serial

import (
	"fmt"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// ReadTimeout bounds every read on an open port. The polled receive
// loop relies on reads returning quickly when the line is silent.
const ReadTimeout = 10 * time.Millisecond

// BaudRates lists the supported line speeds.
var BaudRates = []int{9600, 19200, 38400, 57600, 115200}

// DataBitOptions lists the supported word lengths.
var DataBitOptions = []int{5, 6, 7, 8}

// ParityOptions lists the supported parity modes.
var ParityOptions = []string{"none", "odd", "even"}

// StopBitOptions lists the supported stop bit counts.
var StopBitOptions = []int{1, 2}

// PortConfig defines the line parameters used when opening a port.
type PortConfig struct {
	Device   string `json:"device"`
	BaudRate int    `json:"baud_rate"`
	DataBits int    `json:"data_bits"`
	Parity   string `json:"parity"`
	StopBits int    `json:"stop_bits"`
}

// Validate checks if the port configuration is valid.
func (c PortConfig) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("device cannot be empty")
	}

	validBaud := false
	for _, rate := range BaudRates {
		if c.BaudRate == rate {
			validBaud = true
			break
		}
	}
	if !validBaud {
		return fmt.Errorf("invalid baud rate: %d", c.BaudRate)
	}

	if c.DataBits < 5 || c.DataBits > 8 {
		return fmt.Errorf("data bits must be between 5 and 8, got: %d", c.DataBits)
	}

	validParity := false
	for _, p := range ParityOptions {
		if c.Parity == p {
			validParity = true
			break
		}
	}
	if !validParity {
		return fmt.Errorf("invalid parity: %s", c.Parity)
	}

	if c.StopBits < 1 || c.StopBits > 2 {
		return fmt.Errorf("stop bits must be 1 or 2, got: %d", c.StopBits)
	}

	return nil
}

// DefaultConfig returns the default line parameters: 9600 8-N-1 with
// no device selected.
func DefaultConfig() PortConfig {
	return PortConfig{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   "none",
		StopBits: 1,
	}
}

// Port is the capability set the session controller holds while a port
// is open: bounded read, full write, available-bytes query, release.
type Port interface {
	// Read fills p with received bytes. It returns 0, nil when nothing
	// arrives within the read timeout.
	Read(p []byte) (int, error)
	// Write transmits all of p, blocking until the driver accepts it.
	Write(p []byte) (int, error)
	// Available reports how many received bytes can be read without
	// blocking beyond the read timeout.
	Available() (int, error)
	Close() error
}

// Opener is the port factory consumed by the session controller.
type Opener func(PortConfig) (Port, error)

// Open opens the device named in config with the configured line
// parameters and the fixed read timeout.
func Open(config PortConfig) (Port, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	mode := &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: config.DataBits,
		Parity:   convertParity(config.Parity),
		StopBits: convertStopBits(config.StopBits),
	}

	port, err := serial.Open(config.Device, mode)
	if err != nil {
		return nil, err
	}

	if err := port.SetReadTimeout(ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	return &devicePort{port: port}, nil
}

// driverPort is the subset of the driver's port the adapter uses.
type driverPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// devicePort adapts a go.bug.st/serial port to the Port capability set.
// The driver exposes no input-queue query, so Available performs a
// timeout-bounded read into a stash that the next Read drains first.
type devicePort struct {
	port  driverPort
	stash []byte
}

func (dp *devicePort) Available() (int, error) {
	if len(dp.stash) > 0 {
		return len(dp.stash), nil
	}

	buf := make([]byte, 16)
	n, err := dp.port.Read(buf)
	if err != nil {
		return 0, err
	}
	dp.stash = append(dp.stash, buf[:n]...)
	return len(dp.stash), nil
}

func (dp *devicePort) Read(p []byte) (int, error) {
	if len(dp.stash) > 0 {
		n := copy(p, dp.stash)
		dp.stash = dp.stash[n:]
		return n, nil
	}
	return dp.port.Read(p)
}

// Write blocks until every byte of p has been accepted by the driver.
func (dp *devicePort) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := dp.port.Write(p[written:])
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (dp *devicePort) Close() error {
	dp.stash = nil
	return dp.port.Close()
}

// convertStopBits converts our stop bits format to go.bug.st/serial format.
func convertStopBits(stopBits int) serial.StopBits {
	switch stopBits {
	case 2:
		return serial.TwoStopBits
	default:
		return serial.OneStopBit
	}
}

// convertParity converts our parity format to go.bug.st/serial format.
func convertParity(parity string) serial.Parity {
	switch parity {
	case "odd":
		return serial.OddParity
	case "even":
		return serial.EvenParity
	default:
		return serial.NoParity
	}
}

// ListPorts returns the names of the serial devices currently attached
// to the host.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to get available ports: %w", err)
	}
	return ports, nil
}

// PortInfo contains information about an attached serial port.
type PortInfo struct {
	Name         string `json:"name"`
	IsUSB        bool   `json:"is_usb"`
	VID          string `json:"vid,omitempty"`
	PID          string `json:"pid,omitempty"`
	Product      string `json:"product,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
}

// GetDetailedPortsList returns detailed information about attached
// serial ports, including USB identity where the platform reports it.
func GetDetailedPortsList() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to get ports list: %w", err)
	}

	var portInfos []PortInfo
	for _, d := range details {
		portInfos = append(portInfos, PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			Product:      d.Product,
			SerialNumber: d.SerialNumber,
		})
	}

	return portInfos, nil
}
