package tui

import (
	"os"
)

// GetLogFilePath returns the log file to mirror output into.
// A configured path wins; otherwise STOKE_LOG_FILE is used. Empty disables file logging.
func GetLogFilePath(configured string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv("STOKE_LOG_FILE")
}
