// Package errors renders command failures for the terminal and exits.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/moodatlas/internal/logger"
)

const prefix = "Error: "

// Format returns the user-facing line for err, or "" for nil.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return prefix + err.Error()
}

// Fatal records err in the log file, prints it to stderr and exits 1.
// A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
