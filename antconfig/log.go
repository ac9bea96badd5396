package antconfig

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds a *log.Logger for the process: to stderr when
// cfg.LogPath is empty, or through a rotating lumberjack.Logger sized by
// cfg.LogMaxSizeMB otherwise, grounded on ausocean-av's cmd/looper
// fileLog-via-lumberjack setup. The bracketed "[component] " message
// prefixing throughout antdriver/antchannel/antrouter is left to each
// call site's own log.Printf; this logger only decides the destination.
func (c *Config) NewLogger() *log.Logger {
	var w io.Writer = os.Stderr
	if c.LogPath != "" {
		w = &lumberjack.Logger{
			Filename:   c.LogPath,
			MaxSize:    c.LogMaxSizeMB,
			MaxBackups: 5,
			MaxAge:     28,
		}
	}
	return log.New(w, "", log.LstdFlags)
}
