package config

import (
	"io"
	"log/slog"
	"os"
)

// SetupLogging installs the default slog logger described by the config.
// The returned function closes the log file, if one was opened.
func (c Config) SetupLogging(stderr io.Writer) (func() error, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}

	w := stderr
	closeFn := func() error { return nil }
	if c.Log.File != "" {
		f, err := os.Create(c.Log.File)
		if err != nil {
			return nil, err
		}
		w = f
		closeFn = func() error {
			f.Sync()
			return f.Close()
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))

	return closeFn, nil
}
