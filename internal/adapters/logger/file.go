package logger

import (
	"os"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogMaxSize    = 1
	defaultLogMaxBackups = 2
	defaultLogMaxAge     = 30
)

// newRotatingFile creates the rotating debug log writer. The file and its
// directory are created on the first write.
func newRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    envInt("YPMS_LOG_MAX_SIZE", defaultLogMaxSize, 1),
		MaxBackups: envInt("YPMS_LOG_MAX_BACKUPS", defaultLogMaxBackups, 0),
		MaxAge:     envInt("YPMS_LOG_MAX_AGE", defaultLogMaxAge, 1),
	}
}

func envInt(key string, fallback, minimum int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < minimum {
		return fallback
	}
	return v
}
