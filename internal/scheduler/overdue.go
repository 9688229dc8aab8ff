// Package scheduler runs the periodic overdue-loan scan.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/library-tracker/internal/library"
)

// OverdueScanScheduler periodically lists loans past their due date with no
// recorded return.
type OverdueScanScheduler struct {
	service  *library.Service
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueScanScheduler creates a new scheduler instance. schedule is in
// standard 5-field cron format.
func NewOverdueScanScheduler(service *library.Service, schedule string) *OverdueScanScheduler {
	return &OverdueScanScheduler{
		service:  service,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *OverdueScanScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runScan)
	if err != nil {
		return fmt.Errorf("failed to schedule overdue scan %q: %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Overdue scan scheduled: %s", s.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running scan to finish.
func (s *OverdueScanScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Overdue scan stopped")
}

func (s *OverdueScanScheduler) runScan() {
	records, err := s.service.LoansDueWithin(0)
	if err != nil {
		log.Printf("Overdue scan failed: %v", err)
		return
	}

	if len(records) == 0 {
		log.Printf("Overdue scan: no overdue loans")
		return
	}

	log.Printf("Overdue scan: %d overdue loans", len(records))
	for _, record := range records {
		log.Printf("  Overdue: %q (book %d) borrowed by %q (reader %d), was due %s",
			record.Book.Title, record.BookID,
			record.Reader.Name, record.ReaderID,
			record.ReturnDueDate.Format("2006-01-02"))
	}
}
