package tray

// Event is an application-level tray event.
type Event int

// Tray events. The first six mirror raw tray input and menu items;
// ScanNow, CleanNow and Refresh are produced by menu items, the scheduler
// and the periodic registration check.
const (
	RightClick Event = iota
	LeftClick
	DoubleClick
	Exit
	OpenEditor
	ToggleStartup
	ScanNow
	CleanNow
	Refresh
)

func (e Event) String() string {
	switch e {
	case RightClick:
		return "right-click"
	case LeftClick:
		return "left-click"
	case DoubleClick:
		return "double-click"
	case Exit:
		return "exit"
	case OpenEditor:
		return "open-editor"
	case ToggleStartup:
		return "toggle-startup"
	case ScanNow:
		return "scan-now"
	case CleanNow:
		return "clean-now"
	case Refresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// Source produces raw tray events. Next blocks until an event is available
// and returns false once the underlying message source has shut down.
type Source interface {
	Next() (Event, bool)
}
