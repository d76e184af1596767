package tray

import (
	"log/slog"

	"github.com/autocleaner/autocleaner/internal/launcher"
	"github.com/autocleaner/autocleaner/internal/shm"
)

// Deps are the collaborators of a Loop.
type Deps struct {
	Registrar Registrar
	Launcher  Launcher
	Scanner   Scanner
	Menu      Menu
	Active    shm.Cell       // set while the loop runs; may be nil
	Exit      func(code int) // terminates the process
	Logger    *slog.Logger
}

// Loop is the tray state machine. Events are produced by a pump goroutine
// reading a Source (and by Post), queued in FIFO order, and consumed one at
// a time by a single goroutine, which is the only writer of menu state.
type Loop struct {
	registrar Registrar
	launcher  Launcher
	scanner   Scanner
	menu      Menu
	active    shm.Cell
	exit      func(code int)
	logger    *slog.Logger

	queue *eventQueue
	state MenuState
}

// NewLoop creates a Loop. The initial startup state is queried here.
func NewLoop(d Deps) *Loop {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		registrar: d.Registrar,
		launcher:  d.Launcher,
		scanner:   d.Scanner,
		menu:      d.Menu,
		active:    d.Active,
		exit:      d.Exit,
		logger:    logger.With("component", "tray"),
		queue:     newEventQueue(),
		state:     MenuState{StartupEnabled: d.Registrar.Enabled()},
	}
}

// State returns the installed menu state. Only meaningful from the consumer
// goroutine or after Run has returned.
func (l *Loop) State() MenuState {
	return l.state
}

// Post enqueues ev from outside the pump, e.g. a scheduler tick. It reports
// false once the loop has shut down.
func (l *Loop) Post(ev Event) bool {
	return l.queue.Push(ev)
}

// Run installs the initial menu, starts the pump goroutine on src and
// consumes events on the calling goroutine. It returns when src reports
// shutdown and the queue has drained, or after an Exit event.
func (l *Loop) Run(src Source) {
	if l.active != nil {
		l.active.Store(true)
	}
	l.install(l.state)

	go l.pump(src)

	for {
		ev, ok := l.queue.Pop()
		if !ok {
			l.logger.Info("event source closed")
			l.setInactive()
			return
		}
		if !l.handle(ev) {
			return
		}
	}
}

// pump moves raw events from src into the queue. It never touches state.
func (l *Loop) pump(src Source) {
	for {
		ev, ok := src.Next()
		if !ok {
			l.queue.Close()
			return
		}
		if !l.queue.Push(ev) {
			return
		}
	}
}

// handle applies one event. It returns false on the terminal transition.
func (l *Loop) handle(ev Event) bool {
	l.logger.Debug("event", "event", ev)

	switch ev {
	case ToggleStartup:
		want := !l.state.StartupEnabled
		if err := l.registrar.SetEnabled(want); err != nil {
			l.logger.Warn("startup toggle ignored: registration failed", "enabled", want, "error", err)
			want = l.registrar.Enabled()
		}
		l.install(MenuState{StartupEnabled: want})

	case OpenEditor:
		l.launcher.SpawnRole(launcher.RoleEditor)

	case RightClick, LeftClick:
		l.install(MenuState{StartupEnabled: l.registrar.Enabled()})
		if err := l.menu.ShowMenu(); err != nil {
			l.logger.Warn("show menu failed", "error", err)
		}

	case Refresh:
		if enabled := l.registrar.Enabled(); enabled != l.state.StartupEnabled {
			l.install(MenuState{StartupEnabled: enabled})
		}

	case DoubleClick:

	case ScanNow:
		l.scanner.ScanAndNotify()

	case CleanNow:
		l.scanner.CleanAndNotify()

	case Exit:
		l.logger.Info("exit requested")
		l.queue.Close()
		l.setInactive()
		l.exit(0)
		return false

	default:
		l.logger.Warn("unknown event ignored", "event", int(ev))
	}
	return true
}

func (l *Loop) install(state MenuState) {
	l.state = state
	if err := l.menu.SetMenu(state); err != nil {
		l.logger.Warn("menu update failed", "error", err)
	}
}

func (l *Loop) setInactive() {
	if l.active != nil {
		l.active.Store(false)
	}
}
