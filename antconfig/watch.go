package antconfig

import (
	"bufio"
	"log"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// HotSettings are the non-wire-format settings a running process may pick
// up without a restart: log level and the metrics listen address. Stored
// as a flat "key=value" file, one per line.
type HotSettings struct {
	LogLevel    string
	MetricsAddr string
}

func parseHotSettings(path string) (HotSettings, error) {
	f, err := os.Open(path)
	if err != nil {
		return HotSettings{}, err
	}
	defer f.Close()

	var hs HotSettings
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "log-level":
			hs.LogLevel = strings.TrimSpace(v)
		case "metrics-addr":
			hs.MetricsAddr = strings.TrimSpace(v)
		}
	}
	return hs, scanner.Err()
}

// WatchHotReload watches path for writes and invokes onChange with the
// freshly reparsed settings on every event, matching ausocean-av's use of
// fsnotify for its own config watching. The returned watcher's Close
// method stops the watch; callers that don't want hot-reload simply never
// call this.
func WatchHotReload(path string, onChange func(HotSettings)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				hs, err := parseHotSettings(path)
				if err != nil {
					log.Printf("[antconfig] reload %s: %v", path, err)
					continue
				}
				onChange(hs)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[antconfig] watch error: %v", err)
			}
		}
	}()

	return watcher, nil
}
