// Package session provides the serial session controller and its event
// router. The controller owns the port handle while one is open; the
// router is the single mutator, so the core runs lock-free on the
// event loop goroutine.
package session

import (
	"errors"
	"fmt"

	"serial-monitor/pkg/codec"
	"serial-monitor/pkg/serial"
	"serial-monitor/pkg/transcript"
)

// recvBufSize is the fixed receive buffer size for a single-shot read.
const recvBufSize = 16

// TxFormat selects the transmit encoding of the composed command.
type TxFormat int

const (
	TxUTF8 TxFormat = iota
	TxHex
)

// String returns the string representation of TxFormat.
func (f TxFormat) String() string {
	switch f {
	case TxHex:
		return "HEX"
	default:
		return "UTF-8"
	}
}

// ListenerState is the two-state machine of the polled receive loop.
// Listening implies the port handle is present.
type ListenerState int

const (
	Idle ListenerState = iota
	Listening
)

// String returns the string representation of ListenerState.
func (s ListenerState) String() string {
	switch s {
	case Listening:
		return "listening"
	default:
		return "idle"
	}
}

// Controller holds the full session state: line configuration, the
// port handle (nil when closed), listener state, format selections,
// the composed command and the transcript.
type Controller struct {
	open serial.Opener
	log  transcript.Log

	config    serial.PortConfig
	port      serial.Port
	listener  ListenerState
	txFormat  TxFormat
	rxFormats codec.RxFormats
	command   string
	theme     string
}

// NewController creates a controller with default line parameters, hex
// receive rendering active and no port selected. The opener is invoked
// on every OpenPort event; the transcript receives every log line.
func NewController(open serial.Opener, log transcript.Log) *Controller {
	return &Controller{
		open:      open,
		log:       log,
		config:    serial.DefaultConfig(),
		listener:  Idle,
		txFormat:  TxUTF8,
		rxFormats: codec.RxFormats{Hex: true},
	}
}

// Apply routes one event through the controller. It runs to completion
// before the next event is dequeued; every recoverable error is
// absorbed into a transcript line and never escapes.
func (c *Controller) Apply(ev Event) {
	switch ev := ev.(type) {
	case SelectPort:
		c.config.Device = ev.Name
	case SelectBaud:
		c.config.BaudRate = ev.Rate
	case SelectDataBits:
		c.config.DataBits = ev.Bits
	case SelectParity:
		c.config.Parity = ev.Parity
	case SelectStopBits:
		c.config.StopBits = ev.Bits
	case ChangeCommand:
		c.command = ev.Text
	case SelectTxFormat:
		c.txFormat = ev.Format
	case ToggleRxUTF8:
		c.rxFormats.UTF8 = ev.On
	case ToggleRxHex:
		c.rxFormats.Hex = ev.On
	case ToggleRxBinary:
		c.rxFormats.Binary = ev.On
	case OpenPort:
		c.openPort()
	case ClosePort:
		c.closePort()
	case Send:
		c.send()
	case Recv:
		c.recv()
	case ToggleListener:
		c.toggleListener()
	case SelectTheme:
		c.theme = ev.Name
	case HoverTheme:
		c.theme = ev.Name
	}
}

// openPort opens the selected device. A failed open never arms the
// listener; reopening over a live handle releases the old one first,
// and if the reopen fails the listener is forced idle so Listening
// never outlives the handle.
func (c *Controller) openPort() {
	if c.config.Device == "" {
		c.log.Append(transcript.KindError, "No port selected")
		return
	}

	if c.port != nil {
		c.port.Close()
		c.port = nil
	}

	port, err := c.open(c.config)
	if err != nil {
		c.listener = Idle
		c.log.Append(transcript.KindError,
			fmt.Sprintf("Failed to open port '%s': %v", c.config.Device, err))
		return
	}

	c.port = port
	c.log.Append(transcript.KindInfo,
		fmt.Sprintf("Successfully opened port '%s'", c.config.Device))
}

// closePort releases the handle and forces the listener idle. Closing
// an already-closed port is a silent no-op; disarming here produces no
// separate "Listener stopped" line.
func (c *Controller) closePort() {
	if c.port == nil {
		return
	}

	c.port.Close()
	c.port = nil
	c.listener = Idle
	c.log.Append(transcript.KindInfo, "Port closed")
}

// send transmits the composed command in the selected encoding. The
// command itself is left untouched so it can be re-sent.
func (c *Controller) send() {
	if c.port == nil {
		c.log.Append(transcript.KindError, "Port not open")
		return
	}

	cmd := c.command
	var payload []byte

	switch c.txFormat {
	case TxHex:
		decoded, err := codec.DecodeHex(cmd)
		if errors.Is(err, codec.ErrOddLength) {
			c.log.Append(transcript.KindError, "Invalid hex string")
			return
		}
		if err != nil {
			c.log.Append(transcript.KindError, fmt.Sprintf("Error decoding hex: %v", err))
			return
		}
		payload = decoded
		if _, err := c.port.Write(payload); err != nil {
			c.log.Append(transcript.KindError, fmt.Sprintf("Error sending hex command: %v", err))
			return
		}
	default:
		payload = []byte(cmd)
		if _, err := c.port.Write(payload); err != nil {
			c.log.Append(transcript.KindError, fmt.Sprintf("Error sending utf8 command: %v", err))
			return
		}
	}

	c.log.Append(transcript.KindTX, fmt.Sprintf("Sent %d bytes: %s", len(payload), cmd))
}

// recv performs one single-shot receive. When nothing is available it
// returns silently, which keeps the polled listener cheap. The full
// fixed-size buffer is rendered while the logged count reflects the
// actual read length.
func (c *Controller) recv() {
	if c.port == nil {
		c.log.Append(transcript.KindError, "Port not open")
		return
	}

	avail, err := c.port.Available()
	if err != nil {
		c.log.Append(transcript.KindError, err.Error())
		return
	}
	if avail == 0 {
		return
	}

	buf := make([]byte, recvBufSize)
	n, err := c.port.Read(buf)
	if err != nil {
		c.log.Append(transcript.KindError, err.Error())
		return
	}

	for _, line := range codec.Render(buf, c.rxFormats) {
		c.log.Append(transcript.KindRX, fmt.Sprintf("Received %d bytes: %s", n, line))
	}
}

// toggleListener arms or disarms the polled receive loop. Arming
// requires an open port.
func (c *Controller) toggleListener() {
	if c.port == nil {
		c.log.Append(transcript.KindError, "Port not open")
		return
	}

	if c.listener == Idle {
		c.listener = Listening
		c.log.Append(transcript.KindInfo, "Listener started")
	} else {
		c.listener = Idle
		c.log.Append(transcript.KindInfo, "Listener stopped")
	}
}

// Config returns the current line configuration.
func (c *Controller) Config() serial.PortConfig {
	return c.config
}

// PortOpen reports whether a port handle is currently held.
func (c *Controller) PortOpen() bool {
	return c.port != nil
}

// Listener returns the listener state.
func (c *Controller) Listener() ListenerState {
	return c.listener
}

// TxFormat returns the selected transmit encoding.
func (c *Controller) TxFormat() TxFormat {
	return c.txFormat
}

// RxFormats returns the active receive rendering flags.
func (c *Controller) RxFormats() codec.RxFormats {
	return c.rxFormats
}

// Command returns the composed outbound command.
func (c *Controller) Command() string {
	return c.command
}

// Theme returns the selected theme name, empty until one is chosen.
func (c *Controller) Theme() string {
	return c.theme
}

// Log returns the transcript.
func (c *Controller) Log() transcript.Log {
	return c.log
}
