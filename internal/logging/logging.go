package logging

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

var once sync.Once

// Options configures the process-wide logger.
type Options struct {
	Level  slog.Leveler
	Writer *os.File // default: os.Stdout
}

// Init installs a tint handler as the slog default. Safe to call more than
// once; only the first call wins.
func Init(opts Options) {
	once.Do(func() {
		writer := opts.Writer
		if writer == nil {
			writer = os.Stdout
		}
		handler := tint.NewHandler(writer, &tint.Options{
			Level:      opts.Level,
			TimeFormat: time.RFC3339,
		})
		slog.SetDefault(slog.New(handler))
	})
}
