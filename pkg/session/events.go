package session

// Event is a single input to the router. Events come from the
// presentation surface and from the listener tick source; they are
// applied one at a time, each to completion.
type Event interface {
	isEvent()
}

// SelectPort sets the selected device name.
type SelectPort struct{ Name string }

// SelectBaud updates the configured baud rate. It does not affect an
// already-open port.
type SelectBaud struct{ Rate int }

// SelectDataBits updates the configured word length.
type SelectDataBits struct{ Bits int }

// SelectParity updates the configured parity mode.
type SelectParity struct{ Parity string }

// SelectStopBits updates the configured stop bit count.
type SelectStopBits struct{ Bits int }

// ChangeCommand replaces the composed outbound command.
type ChangeCommand struct{ Text string }

// SelectTxFormat sets the transmit encoding.
type SelectTxFormat struct{ Format TxFormat }

// ToggleRxUTF8 sets the UTF-8 receive rendering flag.
type ToggleRxUTF8 struct{ On bool }

// ToggleRxHex sets the hex receive rendering flag.
type ToggleRxHex struct{ On bool }

// ToggleRxBinary sets the binary receive rendering flag.
type ToggleRxBinary struct{ On bool }

// OpenPort opens the selected device with the configured line
// parameters.
type OpenPort struct{}

// ClosePort releases the port handle and disarms the listener.
type ClosePort struct{}

// Send transmits the composed command in the selected encoding.
type Send struct{}

// Recv performs one single-shot receive. Emitted on user gesture and
// on each listener tick.
type Recv struct{}

// ToggleListener arms or disarms the polled receive loop.
type ToggleListener struct{}

// SelectTheme sets the selected UI theme.
type SelectTheme struct{ Name string }

// HoverTheme previews a UI theme while its entry is highlighted.
type HoverTheme struct{ Name string }

func (SelectPort) isEvent()     {}
func (SelectBaud) isEvent()     {}
func (SelectDataBits) isEvent() {}
func (SelectParity) isEvent()   {}
func (SelectStopBits) isEvent() {}
func (ChangeCommand) isEvent()  {}
func (SelectTxFormat) isEvent() {}
func (ToggleRxUTF8) isEvent()   {}
func (ToggleRxHex) isEvent()    {}
func (ToggleRxBinary) isEvent() {}
func (OpenPort) isEvent()       {}
func (ClosePort) isEvent()      {}
func (Send) isEvent()           {}
func (Recv) isEvent()           {}
func (ToggleListener) isEvent() {}
func (SelectTheme) isEvent()    {}
func (HoverTheme) isEvent()     {}
