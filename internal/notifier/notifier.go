// Package notifier runs a scan or clean pass over the tracked folders and
// tells the user about the result with a desktop notification.
package notifier

import (
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"
	"github.com/google/uuid"

	"github.com/autocleaner/autocleaner/internal/config"
	"github.com/autocleaner/autocleaner/internal/models"
)

// Title is the notification title.
const Title = "AutoCleaner"

// FolderScanner counts or removes expired files across folders.
type FolderScanner interface {
	ScanFolders(folders []models.TrackedFolder) int
	CleanFolders(folders []models.TrackedFolder) int
}

// Notifier ties the retention scanner to the folder list and the desktop.
type Notifier struct {
	scanner FolderScanner
	logger  *slog.Logger

	folders func() []models.TrackedFolder
	enabled func() bool
	send    func(title, message string) error
}

// New creates a Notifier reading the persisted folder list and settings.
func New(scanner FolderScanner, logger *slog.Logger) *Notifier {
	beeep.AppName = Title
	return &Notifier{
		scanner: scanner,
		logger:  logger.With("component", "notifier"),
		folders: func() []models.TrackedFolder { return config.LoadFolders().Folders },
		enabled: func() bool { return config.LoadSettingsOrDefault().Scan.Notify },
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// ScanAndNotify counts expired files in every tracked folder and notifies
// when there is at least one. It returns the count.
func (n *Notifier) ScanAndNotify() int {
	run := uuid.NewString()
	folders := n.folders()
	count := n.scanner.ScanFolders(folders)
	n.logger.Info("scan finished", "run", run, "folders", len(folders), "expired", count)

	n.notify(run, count, "expired files found")
	return count
}

// CleanAndNotify removes expired files from every tracked folder and
// notifies when anything was removed. It returns the number removed.
func (n *Notifier) CleanAndNotify() int {
	run := uuid.NewString()
	folders := n.folders()
	removed := n.scanner.CleanFolders(folders)
	n.logger.Info("clean finished", "run", run, "folders", len(folders), "removed", removed)

	n.notify(run, removed, "expired files removed")
	return removed
}

func (n *Notifier) notify(run string, count int, what string) {
	if count == 0 || !n.enabled() {
		return
	}
	message := fmt.Sprintf("🧹 %d %s", count, what)
	if err := n.send(Title, message); err != nil {
		n.logger.Warn("notification ignored: send failed", "run", run, "error", err)
	}
}
