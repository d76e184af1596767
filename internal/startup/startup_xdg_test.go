//go:build unix && !darwin

package startup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestXDGRegistrar(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	r := newPlatform(func() (string, error) { return "/opt/Auto Cleaner/autocleaner", nil })

	if r.Enabled() {
		t.Fatal("Enabled() = true before registration")
	}
	if err := r.SetEnabled(true); err != nil {
		t.Fatalf("SetEnabled(true) error = %v", err)
	}
	if !r.Enabled() {
		t.Fatal("Enabled() = false after registration")
	}

	dir, _ := autostartDir()
	data, err := os.ReadFile(filepath.Join(dir, desktopFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `Exec="/opt/Auto Cleaner/autocleaner" tray-startup`) {
		t.Errorf("desktop entry has wrong Exec line:\n%s", data)
	}

	if err := r.SetEnabled(false); err != nil {
		t.Fatalf("SetEnabled(false) error = %v", err)
	}
	if r.Enabled() {
		t.Fatal("Enabled() = true after removal")
	}
	if err := r.SetEnabled(false); err != nil {
		t.Fatalf("SetEnabled(false) twice error = %v", err)
	}
}

func TestQuoteExec(t *testing.T) {
	tests := map[string]string{
		"/usr/bin/autocleaner": `"/usr/bin/autocleaner"`,
		`/tmp/a"b`:             `"/tmp/a\\"b"`,
		"/tmp/$HOME":           `"/tmp/\\$HOME"`,
		`/opt/a\b`:             `"/opt/a\\\\b"`,
		"/opt/x`y`":            "\"/opt/x\\\\`y\\\\`\"",
		"/opt/100%":            `"/opt/100%%"`,
	}
	for in, want := range tests {
		if got := quoteExec(in); got != want {
			t.Errorf("quoteExec(%q) = %q, want %q", in, got, want)
		}
	}
}

// unquoteExec reverses quoteExec the way a desktop environment reads the
// Exec key: string-value unescaping first, then Exec argument unquoting.
func unquoteExec(t *testing.T, field string) string {
	t.Helper()
	if len(field) < 2 || field[0] != '"' || field[len(field)-1] != '"' {
		t.Fatalf("Exec argument %q is not quoted", field)
	}
	value := strings.ReplaceAll(field[1:len(field)-1], `\\`, `\`)

	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '\\' && i+1 < len(value):
			i++
			b.WriteByte(value[i])
		case c == '%' && i+1 < len(value) && value[i+1] == '%':
			i++
			b.WriteByte('%')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func TestQuoteExecRoundTrip(t *testing.T) {
	paths := []string{
		"/usr/bin/autocleaner",
		`/home/u/bin\autocleaner`,
		`/opt/we"ird/$dir/100%/a\\b`,
	}
	for _, path := range paths {
		if got := unquoteExec(t, quoteExec(path)); got != path {
			t.Errorf("unquoteExec(quoteExec(%q)) = %q", path, got)
		}
	}
}
