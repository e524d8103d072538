package notifier

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/logger"
)

var (
	sendFunc = func(title, message string) error {
		return beeep.Notify(title, message, "")
	}
	retryDelay = 500 * time.Millisecond
)

type Notifier struct{}

func New() *Notifier {
	beeep.AppName = constants.DisplayName
	return &Notifier{}
}

// Notify shows a desktop notification, retrying transient failures.
func (n *Notifier) Notify(title, text string) error {
	var err error
	for attempt := 1; attempt <= constants.NotifyMaxRetries; attempt++ {
		if err = sendFunc(title, text); err == nil {
			return nil
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", err)
		if attempt < constants.NotifyMaxRetries {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("failed to send notification after %d attempts: %w", constants.NotifyMaxRetries, err)
}

// ReminderMessage builds the body of the daily "write an entry" reminder.
func ReminderMessage(username string, currentStreak int) string {
	switch {
	case currentStreak == 0:
		return fmt.Sprintf("Hi %s, you haven't written in your journal today.", username)
	case currentStreak == 1:
		return fmt.Sprintf("Hi %s, you wrote yesterday. Keep it going with an entry today.", username)
	default:
		return fmt.Sprintf("Hi %s, you're on a %d-day streak. Write today to keep it alive.", username, currentStreak)
	}
}
