package http

import (
	"context"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/library"
)

// ReminderEnqueuer schedules a due-date reminder for a freshly created loan.
// Implemented by the tasks client; nil when the task queue is disabled.
type ReminderEnqueuer interface {
	EnqueueDueReminder(ctx context.Context, loanID uint) error
}

// RouterConfig holds all dependencies for the HTTP router.
// Using a config struct keeps NewRouter's signature stable as wiring grows.
type RouterConfig struct {
	Service       *library.Service
	Database      *database.Database
	Reminders     ReminderEnqueuer
	TemplatesPath string
	StaticPath    string
	Version       string
}
