// Package logger owns the process-wide structured log sink. Records are JSON
// lines in <workspace>/.heron/logs/heron.log; until Setup succeeds every
// record is discarded.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	dirName  = ".heron"
	fileName = "heron.log"
)

type Config struct {
	Root  string
	Debug bool
}

type sink struct {
	log    *slog.Logger
	file   *os.File
	path   string
	opened time.Time
}

var (
	mu      sync.RWMutex
	current = sink{log: discard()}
)

// Setup points the global logger at the workspace log file and returns a
// cleanup func that closes it. On failure the logger keeps discarding.
func Setup(cfg Config) (func() error, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}

	f, path, err := openLogFile(filepath.Clean(root))
	if err != nil {
		swap(sink{log: discard()})
		return nil, err
	}

	l := slog.New(slog.NewJSONHandler(f, handlerOptions(cfg.Debug)))
	swap(sink{log: l, file: f, path: path, opened: time.Now().UTC()})

	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	return func() error {
		old := swap(sink{log: discard()})
		if old.file == nil {
			return nil
		}
		return old.file.Close()
	}, nil
}

func openLogFile(root string) (*os.File, string, error) {
	dir := filepath.Join(root, dirName, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", err
	}
	path := filepath.Join(dir, fileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// handlerOptions writes UTC RFC3339Nano timestamps; debug adds source.
func handlerOptions(debug bool) *slog.HandlerOptions {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return opts
}

func swap(next sink) sink {
	mu.Lock()
	defer mu.Unlock()
	prev := current
	current = next
	return prev
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current.log
}

func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return current.path
}

func InitTime() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return current.opened
}

func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if current.file == nil {
		return errors.New("logger not initialized")
	}
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
