package launcher

import (
	"os/exec"
	"runtime"
)

// terminalCandidates lists terminal emulators tried in order, each with the
// flag that makes it run the remaining arguments as a command.
var terminalCandidates = map[string][][]string{
	"linux": {
		{"x-terminal-emulator", "-e"},
		{"gnome-terminal", "--"},
		{"konsole", "-e"},
		{"xfce4-terminal", "-x"},
		{"alacritty", "-e"},
		{"kitty"},
		{"xterm", "-e"},
	},
	"windows": {
		{"wt.exe"},
		{"conhost.exe"},
	},
}

// DetectTerminal returns the first available terminal command prefix for
// this platform, or nil.
func DetectTerminal() []string {
	return detectTerminal(runtime.GOOS, exec.LookPath)
}

func detectTerminal(goos string, lookPath func(string) (string, error)) []string {
	candidates, ok := terminalCandidates[goos]
	if !ok {
		candidates = terminalCandidates["linux"]
	}
	for _, c := range candidates {
		if _, err := lookPath(c[0]); err == nil {
			return append([]string{}, c...)
		}
	}
	return nil
}
