//go:build windows

package trayicon

import _ "embed"

//go:embed assets/icon.ico
var iconData []byte
