package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autocleaner/autocleaner/internal/config"
	"github.com/autocleaner/autocleaner/internal/daemon/scheduler"
	"github.com/autocleaner/autocleaner/internal/daemon/tray"
	"github.com/autocleaner/autocleaner/internal/daemon/tray/trayicon"
	"github.com/autocleaner/autocleaner/internal/daemon/watcher"
	"github.com/autocleaner/autocleaner/internal/launcher"
	"github.com/autocleaner/autocleaner/internal/logging"
	"github.com/autocleaner/autocleaner/internal/notifier"
	"github.com/autocleaner/autocleaner/internal/retention"
	"github.com/autocleaner/autocleaner/internal/shm"
	"github.com/autocleaner/autocleaner/internal/startup"
)

// refreshInterval is how often the tray re-reads the startup registration,
// which other processes may change.
const refreshInterval = time.Minute

// runTray runs the tray agent. With scanFirst it performs one scan-and-notify
// pass before the icon appears.
func runTray(scanFirst bool) error {
	logger, closer := roleLogger(launcher.RoleTray)
	defer closer.Close()

	h, ok := holdRole(launcher.RoleTray, logger)
	if !ok {
		return nil
	}
	defer h.Release()

	active, err := shm.Default().Flag(shm.TrayActiveFlag)
	if err != nil {
		logger.Error("shared memory unavailable", "flag", shm.TrayActiveFlag, "error", err)
		return fmt.Errorf("failed to open shared flag %s: %w", shm.TrayActiveFlag, err)
	}
	defer shm.Default().Close()

	scanner := retention.New(retention.WithLogger(logger))
	notes := notifier.New(scanner, logger)
	if scanFirst {
		notes.ScanAndNotify()
	}

	settings := config.LoadSettingsOrDefault()
	pruneLogs(scanner, settings.Log.RetentionDays, logger)

	agent := &trayAgent{
		logger: logger,
		deps: tray.Deps{
			Registrar: startup.New(),
			Launcher:  launcher.New(logger),
			Scanner:   notes,
			Active:    active,
			Exit:      func(int) { trayicon.Quit() },
			Logger:    logger,
		},
	}

	// This blocks the main goroutine until the tray exits.
	trayicon.Run(agent.start, agent.stop)
	logger.Info("tray stopped")
	return nil
}

// trayAgent owns the goroutines that feed the tray loop besides the icon
// itself: the scan scheduler, the settings watcher and the refresh ticker.
type trayAgent struct {
	logger *slog.Logger
	deps   tray.Deps

	loop    *tray.Loop
	sched   *scheduler.Scheduler
	watcher *watcher.Watcher
	cancel  context.CancelFunc
}

func (a *trayAgent) start(ui *trayicon.UI) {
	a.deps.Menu = ui
	a.loop = tray.NewLoop(a.deps)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.sched = scheduler.New(a.scheduledScan, a.logger)
	a.reschedule()

	if dir, err := config.AppDir(); err != nil {
		a.logger.Warn("settings watch disabled", "error", err)
	} else if w, err := watcher.New(dir, a.logger); err != nil {
		a.logger.Warn("settings watch disabled", "error", err)
	} else if err := w.Start(); err != nil {
		a.logger.Warn("settings watch disabled", "dir", dir, "error", err)
		w.Stop()
	} else {
		a.watcher = w
		go a.watchSettings(ctx)
	}

	go a.refresh(ctx)

	// Quit the tray on SIGINT/SIGTERM
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			a.logger.Info("shutting down", "signal", sig.String())
			trayicon.Quit()
		case <-ctx.Done():
		}
	}()

	a.logger.Info("tray started", "startup_enabled", a.loop.State().StartupEnabled)
	go a.loop.Run(ui)
}

func (a *trayAgent) stop() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.sched != nil {
		a.sched.Stop()
	}
}

// scheduledScan runs on the cron goroutine. The work itself happens on the
// loop's consumer.
func (a *trayAgent) scheduledScan() {
	ev := tray.ScanNow
	if config.LoadSettingsOrDefault().Scan.AutoClean {
		ev = tray.CleanNow
	}
	if !a.loop.Post(ev) {
		a.logger.Debug("scheduled scan dropped: tray stopped")
	}
}

func (a *trayAgent) reschedule() {
	settings := config.LoadSettingsOrDefault()
	if err := a.sched.Reschedule(settings.Scan.Schedule); err != nil {
		a.logger.Warn("schedule unchanged", "error", err)
	}
}

func (a *trayAgent) watchSettings(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-a.watcher.Events():
			if ev.Type != watcher.EventSettingsChanged {
				continue
			}
			a.reschedule()
			a.loop.Post(tray.Refresh)
		}
	}
}

func (a *trayAgent) refresh(ctx context.Context) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.loop.Post(tray.Refresh)
		}
	}
}

// pruneLogs removes role logs not written for longer than days. Zero keeps
// every log. The tray's own log and, while an editor runs, the editor's log
// are never removed.
func pruneLogs(scanner *retention.Scanner, days uint32, logger *slog.Logger) {
	dir, err := config.LogsDir()
	if err != nil {
		return
	}
	live := []string{launcher.RoleTray}
	if editorRunning() {
		live = append(live, launcher.RoleEditor)
	}
	if removed := logging.Prune(dir, days, scanner, live...); removed > 0 {
		logger.Info("pruned old logs", "removed", removed, "retention_days", days)
	}
}

func editorRunning() bool {
	flag, err := shm.Default().Flag(shm.EditorActiveFlag)
	return err == nil && flag.Load()
}
