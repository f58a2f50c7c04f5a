// Package app wires the session controller, the tcell surface and the
// listener tick source into a single-queue event loop.
package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"serial-monitor/pkg/serial"
	"serial-monitor/pkg/session"
	"serial-monitor/pkg/transcript"
	"serial-monitor/pkg/ui"
)

// tickInterval is the listener polling cadence.
const tickInterval = 10 * time.Millisecond

// Config contains application configuration.
type Config struct {
	// Ports is the device list enumerated at startup.
	Ports []string
	// Opener is the port factory; defaults to the go.bug.st binding.
	Opener serial.Opener
	// Line preselects the starting line configuration, e.g. from a
	// saved profile. Nil keeps the defaults.
	Line *serial.PortConfig
	// Screen lets tests inject a simulation screen.
	Screen tcell.Screen
	// DebugMode writes a plain debug log file next to the binary.
	DebugMode bool
}

// Application owns the event queue. Every controller mutation happens
// on the loop goroutine, which is the serialization point: UI events
// and listener ticks interleave in arrival order with no priority.
type Application struct {
	ctrl   *session.Controller
	view   *ui.View
	screen tcell.Screen
	log    *transcript.MemoryLog

	events      chan session.Event
	tcellEvents chan tcell.Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// tickStop is non-nil while the listener tick source is armed.
	// Touched only from the loop goroutine.
	tickStop chan struct{}

	debugLog *os.File
}

// NewApplication creates the application and initializes the screen.
func NewApplication(config Config) (*Application, error) {
	opener := config.Opener
	if opener == nil {
		opener = serial.Open
	}

	screen := config.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to create screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var debugLog *os.File
	if config.DebugMode {
		// Optional, won't fail the app if it can't be created.
		debugLog, _ = os.Create("serial-monitor-debug.log")
	}

	log := transcript.NewMemoryLog()
	app := &Application{
		ctrl:        session.NewController(opener, log),
		view:        ui.NewView(screen, config.Ports),
		screen:      screen,
		log:         log,
		events:      make(chan session.Event, 64),
		tcellEvents: make(chan tcell.Event, 16),
		ctx:         ctx,
		cancel:      cancel,
		debugLog:    debugLog,
	}

	// Seed the starting configuration through the router so selection
	// rules stay in one place.
	if config.Line != nil {
		app.ctrl.Apply(session.SelectPort{Name: config.Line.Device})
		app.ctrl.Apply(session.SelectBaud{Rate: config.Line.BaudRate})
		app.ctrl.Apply(session.SelectDataBits{Bits: config.Line.DataBits})
		app.ctrl.Apply(session.SelectParity{Parity: config.Line.Parity})
		app.ctrl.Apply(session.SelectStopBits{Bits: config.Line.StopBits})
	}

	return app, nil
}

// logDebug writes a debug message to the log file when enabled.
func (a *Application) logDebug(format string, args ...interface{}) {
	if a.debugLog != nil {
		msg := fmt.Sprintf(format, args...)
		timestamp := time.Now().Format("15:04:05.000")
		fmt.Fprintf(a.debugLog, "[%s] %s\n", timestamp, msg)
	}
}

// Run blocks until the user quits or the context is canceled.
func (a *Application) Run() error {
	defer a.shutdown()

	a.wg.Add(1)
	go a.pollScreen()

	a.view.Draw(a.ctrl)
	a.loop()

	return nil
}

// Stop requests shutdown from outside the loop goroutine.
func (a *Application) Stop() {
	a.cancel()
	// Wake up PollEvent so the poller can observe the canceled context.
	if a.screen != nil {
		a.screen.PostEvent(tcell.NewEventResize(0, 0))
	}
}

// pollScreen forwards tcell events to the loop goroutine.
func (a *Application) pollScreen() {
	defer a.wg.Done()

	for {
		event := a.screen.PollEvent()
		if event == nil {
			return
		}
		select {
		case a.tcellEvents <- event:
		case <-a.ctx.Done():
			return
		}
	}
}

// loop is the router's serialization point. It dequeues one event at a
// time and applies it to completion before the next.
func (a *Application) loop() {
	for {
		select {
		case <-a.ctx.Done():
			return

		case ev := <-a.events:
			a.ctrl.Apply(ev)
			a.syncListener()
			a.view.Draw(a.ctrl)

		case tev := <-a.tcellEvents:
			switch tev := tev.(type) {
			case *tcell.EventKey:
				a.logDebug("key: %v mods=%v", tev.Key(), tev.Modifiers())
				events, action := a.view.HandleKey(tev, a.ctrl)
				for _, ev := range events {
					a.ctrl.Apply(ev)
				}
				switch action {
				case ui.ActionQuit:
					a.cancel()
					return
				case ui.ActionSaveTranscript:
					a.saveTranscript()
				}
				a.syncListener()
				a.view.Draw(a.ctrl)
			case *tcell.EventResize:
				a.screen.Sync()
				a.view.Draw(a.ctrl)
			}
		}
	}
}

// syncListener keeps the tick source aligned with the listener state:
// armed while Listening, stopped otherwise. Closing the port disarms
// it; a tick already queued degrades to a "Port not open" line.
func (a *Application) syncListener() {
	listening := a.ctrl.Listener() == session.Listening

	if listening && a.tickStop == nil {
		stop := make(chan struct{})
		a.tickStop = stop
		a.wg.Add(1)
		go a.tick(stop)
	} else if !listening && a.tickStop != nil {
		close(a.tickStop)
		a.tickStop = nil
	}
}

// tick posts a Recv event into the queue at the polling cadence.
func (a *Application) tick(stop chan struct{}) {
	defer a.wg.Done()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			select {
			case a.events <- session.Recv{}:
			default:
				// Queue full; the next tick will catch up.
			}
		}
	}
}

// saveTranscript writes a snapshot of the log and reports the result
// as a transcript line.
func (a *Application) saveTranscript() {
	filename := fmt.Sprintf("session_%s.log", time.Now().Format("20060102_150405"))
	if err := a.log.SaveToFile(filename, transcript.FormatTimestamped); err != nil {
		a.log.Append(transcript.KindError, fmt.Sprintf("Error saving transcript: %v", err))
		return
	}
	a.log.Append(transcript.KindInfo, fmt.Sprintf("Transcript saved to %s", filename))
}

// shutdown tears the application down: cancels the goroutines, closes
// the port through the router and releases the screen.
func (a *Application) shutdown() {
	a.cancel()

	if a.tickStop != nil {
		close(a.tickStop)
		a.tickStop = nil
	}

	// Release the port; a silent no-op when already closed.
	a.ctrl.Apply(session.ClosePort{})

	if a.screen != nil {
		a.screen.PostEvent(tcell.NewEventResize(0, 0))
		a.screen.Fini()
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}

	if a.debugLog != nil {
		a.debugLog.Close()
		a.debugLog = nil
	}
}

// Controller exposes the session controller, used by tests.
func (a *Application) Controller() *session.Controller {
	return a.ctrl
}
