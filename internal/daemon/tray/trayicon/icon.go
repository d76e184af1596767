//go:build !windows

package trayicon

import _ "embed"

//go:embed assets/icon.png
var iconData []byte
