package mindmap

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a TOML config file whenever it changes on disk.
// Reloaded configs arrive on Updates. A file that fails to parse is logged
// and skipped, so a half-saved file never replaces a good config.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Config
	done    chan struct{}
}

// WatchConfig starts watching path. The containing directory is watched,
// since many editors save by replacing the file.
func WatchConfig(path string) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	cw := &ConfigWatcher{
		path:    filepath.Clean(path),
		watcher: w,
		updates: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

// Updates delivers each successfully reloaded config. Only the newest
// unread config is kept. The channel closes after Close.
func (cw *ConfigWatcher) Updates() <-chan *Config {
	return cw.updates
}

// Close stops watching and waits for the watch goroutine to exit.
func (cw *ConfigWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}

func (cw *ConfigWatcher) loop() {
	defer close(cw.done)
	defer close(cw.updates)
	for {
		select {
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				logger().Warn("config reload failed", "path", cw.path, "err", err)
				continue
			}
			select {
			case <-cw.updates:
			default:
			}
			cw.updates <- cfg
			logger().Debug("config reloaded", "path", cw.path)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger().Warn("config watcher error", "err", err)
		}
	}
}

// ApplyConfig updates a running editor from a reloaded config: theme,
// status overlay, debug mode, zoom limits and interaction settings. The
// window size and font only take effect on restart.
func (e *Editor) ApplyConfig(cfg *Config) error {
	theme, err := cfg.Validate()
	if err != nil {
		return err
	}
	mod, _ := parseModifier(cfg.Editor.EditModifier)

	e.opts.Theme = theme
	e.opts.EditModifier = mod
	e.opts.MaxTextLength = cfg.Editor.MaxTextLength
	e.opts.EdgeThreshold = cfg.Editor.EdgeThreshold
	e.opts.DefaultText = cfg.Editor.DefaultText
	e.opts.ZoomStep = cfg.Camera.ZoomStep
	e.opts.applyDefaults()

	e.cam.MinZoom, e.cam.MaxZoom = cfg.Camera.MinZoom, cfg.Camera.MaxZoom
	e.cam.SetZoom(e.cam.Zoom)
	e.showStatus = cfg.Window.ShowStatus
	e.debug = cfg.Editor.Debug
	return nil
}
