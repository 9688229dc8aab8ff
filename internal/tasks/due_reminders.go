package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/entities"
)

// LoanGetter provides access to a single borrow record.
type LoanGetter interface {
	GetByID(id uint) (*entities.BorrowRecord, error)
}

// DueReminderTask surfaces an upcoming due date for one loan. Enqueued by
// the web shell when a borrow succeeds.
type DueReminderTask struct {
	LoanID uint `json:"loan_id"`
}

// Config returns the queue configuration for due-reminder tasks.
func (t DueReminderTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "due_reminder",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// DueReminderProcessor creates a processor function for DueReminderTask.
// A loan that disappeared (cascade delete) or was already returned is not an
// error: the reminder is simply dropped.
func DueReminderProcessor(loans LoanGetter, lead time.Duration) backlite.QueueProcessor[DueReminderTask] {
	return func(ctx context.Context, task DueReminderTask) error {
		if loans == nil {
			return fmt.Errorf("loan store not configured")
		}

		record, err := loans.GetByID(task.LoanID)
		if err != nil {
			if errors.Is(err, database.ErrLoanNotFound) {
				log.Printf("[TASK] Loan %d no longer exists, dropping reminder", task.LoanID)
				return nil
			}
			return fmt.Errorf("load loan %d: %w", task.LoanID, err)
		}

		if record.ReturnedAt != nil {
			log.Printf("[TASK] Loan %d already returned, dropping reminder", task.LoanID)
			return nil
		}

		until := time.Until(record.ReturnDueDate)
		if until > lead {
			log.Printf("[TASK] Loan %d due %s, reminder not due yet",
				record.ID, record.ReturnDueDate.Format("2006-01-02"))
			return nil
		}

		log.Printf("[TASK] Reminder: book %d borrowed by reader %d is due back %s",
			record.BookID, record.ReaderID, record.ReturnDueDate.Format("2006-01-02"))
		return nil
	}
}

// NewDueReminderQueue creates a backlite queue for due-reminder tasks.
func NewDueReminderQueue(loans LoanGetter, lead time.Duration) backlite.Queue {
	return backlite.NewQueue(DueReminderProcessor(loans, lead))
}
