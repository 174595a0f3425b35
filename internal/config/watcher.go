package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/willie68/GoTikaMeta/internal/logging"
)

var wlog = logging.New().WithName("config")

// Watch watches the config file and reloads it on changes. The callback gets the new config.
// Invalid files are logged and ignored, the old config stays active.
func Watch(ctx context.Context, file string, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// watching the folder, editors often replace the file
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		watcher.Close()
		return err
	}
	name := filepath.Clean(file)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				c, err := read(name)
				if err != nil {
					wlog.Errorf("can't reload config: %v", err)
					continue
				}
				Set(c)
				wlog.Infof("config reloaded: %s", name)
				if onChange != nil {
					onChange(c)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				wlog.Errorf("config watcher: %v", err)
			}
		}
	}()
	return nil
}
